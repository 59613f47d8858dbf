// Package log is the logging abstraction used by cardanocli.
//
// The client never writes to stdout or stderr on its own. Every cardano-cli
// invocation, parameter-cache fill and failed call is reported through a
// [Logger]. Two implementations ship with the package:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger := log.NewNoopLogger() // default, discards everything
//
// Any other logging library can be plugged in by implementing the four
// level methods.
package log
