package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/miketwenty1/balanceofsatoshis/internal/config"
	"github.com/miketwenty1/balanceofsatoshis/internal/fiat"
	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
	"github.com/miketwenty1/balanceofsatoshis/internal/lnd"
	"github.com/miketwenty1/balanceofsatoshis/internal/push"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	node     *lnd.Client
	workflow *push.Workflow
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a workflow
// wired to live node and rate clients.
func New(outW, logW io.Writer, cfg *config.Model) (*App, error) {
	if cfg.Lightning.Host == "" {
		return nil, errors.New("lightning host is a required configuration field and cannot be empty")
	}
	if cfg.Lightning.Macaroon == "" {
		return nil, errors.New("lightning macaroon is a required configuration field and cannot be empty")
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	logger.Debug("Logger configured successfully.")

	node := lnd.New(cfg.Lightning.Host, cfg.Lightning.Macaroon, cfg.Lightning.InsecureTLS, cfg.Lightning.Timeout)
	rates := fiat.NewCoinGecko(cfg.Rates.URL, cfg.Rates.Timeout)
	logger.Debug("Clients configured.", "node", cfg.Lightning.Host, "rates", cfg.Rates.URL)

	return &App{
		outW:   outW,
		logger: logger,
		node:   node,
		workflow: &push.Workflow{
			Channels:  node,
			Finder:    keyFinder{},
			Liquidity: node,
			Network:   node,
			Prober:    node,
			Rates:     rates,
		},
	}, nil
}

// Close releases the node client's resources.
func (a *App) Close() error {
	return a.node.Close()
}

// keyFinder adapts the pure channel-scan helper to the workflow's
// context-carrying interface.
type keyFinder struct{}

func (keyFinder) FindKey(_ context.Context, channels []lightning.Channel, query string) (string, error) {
	return lightning.FindKey(channels, query)
}
