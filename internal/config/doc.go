// Package config defines the application configuration model and loads it
// from HCL files. The model carries node connection details, rate source
// settings, and logging preferences; everything has a default except the
// node credentials.
package config
