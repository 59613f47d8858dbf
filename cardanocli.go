// Package cardanocli drives the cardano-cli binary to query a Cardano node
// and build, sign and submit transactions.
//
// Example usage:
//
//	cfg := cardanocli.DefaultConfig()
//	cfg.Dir = "/var/lib/wallet"
//	cfg.SocketPath = "/ipc/node.socket"
//	client, err := cardanocli.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	tip, err := client.QueryTip(ctx)
//
// The full API lives in pkg/cardanocli; this package re-exports the entry
// points.
package cardanocli

import (
	"github.com/bft-labs/cardanocli/pkg/cardanocli"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// Client drives cardano-cli for one network, era and working directory.
type Client = cardanocli.Client

// Config holds the settings fixed for the lifetime of a Client.
type Config = cardanocli.Config

// Option configures optional behaviour of a Client.
type Option = cardanocli.Option

// Transaction is the descriptor compiled into build and build-raw.
type Transaction = cardanocli.Transaction

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	return cardanocli.New(cfg, opts...)
}

// DefaultConfig returns a mainnet Config working in the current directory.
func DefaultConfig() Config {
	return cardanocli.DefaultConfig()
}

// WithLogger sets the client logger.
func WithLogger(logger log.Logger) Option {
	return cardanocli.WithLogger(logger)
}

// Error kinds, checked with errors.Is.
var (
	ErrValidation = cardanocli.ErrValidation
	ErrCLI        = cardanocli.ErrCLI
	ErrDecode     = cardanocli.ErrDecode
	ErrClosed     = cardanocli.ErrClosed
)
