// Package process runs cardano-cli as a child process.
package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// SocketPathEnv is the variable cardano-cli reads the node socket from.
const SocketPathEnv = "CARDANO_NODE_SOCKET_PATH"

// Invoker implements ports.Invoker with os/exec. It buffers stdout and
// stderr, never retries and imposes no timeout of its own: bound a call
// through ctx.
type Invoker struct {
	env    []string
	logger ports.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithSocketPath sets CARDANO_NODE_SOCKET_PATH for every child process.
// The parent's environment is left untouched.
func WithSocketPath(path string) Option {
	return func(i *Invoker) {
		if path != "" {
			i.env = append(i.env, SocketPathEnv+"="+path)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(i *Invoker) { i.logger = logger }
}

// New creates an Invoker.
func New(opts ...Option) *Invoker {
	i := &Invoker{}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = log.NewNoopLogger()
	}
	return i
}

// Invoke runs cmd and returns its stdout. A non-zero exit, or a binary that
// cannot be started, yields *domain.CLIError.
func (i *Invoker) Invoke(ctx context.Context, cmd ports.Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	if len(i.env) > 0 {
		c.Env = append(os.Environ(), i.env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	i.logger.Debug("invoking cardano-cli", ports.String("command", cmd.String()))
	err := c.Run()
	if err == nil {
		return stdout.String(), nil
	}

	cliErr := &domain.CLIError{
		Command:  cmd.String(),
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cliErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cliErr.Err = errors.Join(err, ctxErr)
	}
	i.logger.Warn("cardano-cli failed",
		ports.String("subcommand", cmd.Subcommand()),
		ports.Int("exit_code", cliErr.ExitCode),
		ports.String("stderr", cliErr.Error()))
	return "", cliErr
}
