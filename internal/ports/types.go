package ports

import (
	"context"
	"strings"
)

//go:generate mockgen -source=$GOFILE -destination=../../pkg/cardanocli/mocks_test.go -package=cardanocli

// Command is one compiled cardano-cli invocation. Args are passed to the
// binary as-is, without a shell.
type Command struct {
	Binary string
	Args   []string
}

// Subcommand returns the leading non-flag arguments, e.g. "transaction build-raw".
func (c Command) Subcommand() string {
	var parts []string
	for _, a := range c.Args {
		if strings.HasPrefix(a, "-") {
			break
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// String renders the command as a shell line. Arguments containing
// whitespace or shell metacharacters are single-quoted.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(quote(c.Binary))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'`$\\|&;<>(){}*?!#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Invoker runs a cardano-cli command and returns its stdout.
// A non-zero exit is reported as *domain.CLIError carrying stderr.
// Implementations must not retry.
type Invoker interface {
	Invoke(ctx context.Context, cmd Command) (string, error)
}

// Namer produces unique artifact paths under the working directory's tmp
// folder, shaped <tmp>/<kind>_<unique><ext>.
type Namer interface {
	Name(kind, ext string) string
}

// ArtifactWriter persists generated artifacts and returns their path.
type ArtifactWriter interface {
	// WriteJSON marshals v into a fresh <kind>_<unique>.json file.
	WriteJSON(kind string, v any) (string, error)

	// WriteFile writes data to path atomically.
	WriteFile(path string, data []byte) error
}
