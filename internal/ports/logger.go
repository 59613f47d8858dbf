package ports

import "github.com/bft-labs/cardanocli/pkg/log"

// Logger is the logging port; it is the public pkg/log interface.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for the core packages.
var (
	String = log.String
	Int    = log.Int
	Uint64 = log.Uint64
	Err    = log.Err
)
