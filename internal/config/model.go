package config

import "time"

// Defaults applied when a setting is absent from the config file.
const (
	DefaultRatesURL     = "https://api.coingecko.com"
	DefaultRatesTimeout = 30 * time.Second
	DefaultNodeTimeout  = 120 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Model is the resolved application configuration.
type Model struct {
	Lightning Lightning
	Rates     Rates
	Log       Log
}

// Lightning holds the node connection settings.
type Lightning struct {
	// Host is the REST host:port of the node.
	Host string
	// Macaroon is the hex-encoded admin macaroon.
	Macaroon string
	// InsecureTLS skips certificate verification, for nodes with
	// self-signed certificates not in the trust store.
	InsecureTLS bool
	// Timeout bounds individual node requests.
	Timeout time.Duration
}

// Rates holds the fiat rate source settings.
type Rates struct {
	URL     string
	Timeout time.Duration
}

// Log holds the logging preferences.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format string
}

// Default returns a Model with every defaultable field populated. The
// lightning credentials have no default and must come from the file or
// flags.
func Default() *Model {
	return &Model{
		Lightning: Lightning{Timeout: DefaultNodeTimeout},
		Rates: Rates{
			URL:     DefaultRatesURL,
			Timeout: DefaultRatesTimeout,
		},
		Log: Log{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
