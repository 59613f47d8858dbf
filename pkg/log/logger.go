package log

// Logger receives the client's structured events: cardano-cli invocations
// and failures, protocol-parameter fetches and invalidations, plugin
// start and stop. Implementations must be safe for concurrent use, as a
// Client logs from every goroutine calling it.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key/value pair of an event, e.g. subcommand=transaction or
// exit_code=1.
type Field struct {
	Key   string
	Value any
}

// String is used for commands, paths and cardano-cli stderr.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int is used for exit codes and counts.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Uint64 is used for slots and lovelace amounts.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Err attaches err under the "error" key.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
