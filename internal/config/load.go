package config

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/miketwenty1/balanceofsatoshis/internal/ctxlog"
)

// hclFile is the top-level structure of a config file for decoding.
type hclFile struct {
	Lightning *hclLightning `hcl:"lightning,block"`
	Rates     *hclRates     `hcl:"rates,block"`
	Log       *hclLog       `hcl:"log,block"`
}

type hclLightning struct {
	Host           string `hcl:"host"`
	Macaroon       string `hcl:"macaroon"`
	InsecureTLS    *bool  `hcl:"insecure_tls,optional"`
	TimeoutSeconds *int64 `hcl:"timeout_seconds,optional"`
}

type hclRates struct {
	URL            *string `hcl:"url,optional"`
	TimeoutSeconds *int64  `hcl:"timeout_seconds,optional"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load parses an HCL config file and overlays it on the defaults.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	model := Default()
	if block := parsed.Lightning; block != nil {
		model.Lightning.Host = block.Host
		model.Lightning.Macaroon = block.Macaroon
		if block.InsecureTLS != nil {
			model.Lightning.InsecureTLS = *block.InsecureTLS
		}
		if block.TimeoutSeconds != nil {
			model.Lightning.Timeout = time.Duration(*block.TimeoutSeconds) * time.Second
		}
	}
	if block := parsed.Rates; block != nil {
		if block.URL != nil {
			model.Rates.URL = *block.URL
		}
		if block.TimeoutSeconds != nil {
			model.Rates.Timeout = time.Duration(*block.TimeoutSeconds) * time.Second
		}
	}
	if block := parsed.Log; block != nil {
		if block.Level != nil {
			model.Log.Level = *block.Level
		}
		if block.Format != nil {
			model.Log.Format = *block.Format
		}
	}

	return model, nil
}
