package paramwatch

import "github.com/bft-labs/cardanocli/pkg/cardanocli"

// WithParamWatch returns a cardanocli Option that enables the watcher.
//
// Usage:
//
//	c, err := cardanocli.New(cfg, paramwatch.WithParamWatch())
func WithParamWatch(extraDirs ...string) cardanocli.Option {
	return cardanocli.WithPlugin(New(extraDirs...))
}
