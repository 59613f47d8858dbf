package cardanocli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/cardanocli/internal/ports"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// Invoker runs one compiled cardano-cli command. The default runs the
// binary with os/exec.
type Invoker = ports.Invoker

// Command is a compiled cardano-cli invocation.
type Command = ports.Command

// Namer produces unique artifact paths.
type Namer = ports.Namer

// Logger is the structured logging interface.
type Logger = log.Logger

// Plugin extends a Client with background behaviour. Plugins are
// initialized by New in registration order and shut down by Close in
// reverse order.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins at initialization.
type PluginConfig struct {
	Dir    string
	TmpDir string
	Logger Logger
	Cache  ParamCache
}

// ParamCache is the view of the protocol-parameter cache given to plugins.
type ParamCache interface {
	// Path returns the cached parameters file, or "" when unset.
	Path() string
	// Invalidate drops the cached path; the next operation refetches.
	Invalidate()
}

// Option configures optional behaviour of a Client.
type Option func(*options)

type options struct {
	invoker    Invoker
	namer      Namer
	logger     Logger
	registerer prometheus.Registerer
	metrics    bool
	plugins    []Plugin
}

// WithInvoker replaces the process invoker, e.g. with a stub in tests.
func WithInvoker(inv Invoker) Option {
	return func(o *options) { o.invoker = inv }
}

// WithNamer replaces the artifact namer.
func WithNamer(n Namer) Option {
	return func(o *options) { o.namer = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records invocation counters and durations on reg
// (prometheus.DefaultRegisterer when nil).
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = true
		o.registerer = reg
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, p) }
}
