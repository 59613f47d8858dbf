// Package ports defines the interfaces that connect the client core to its
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Invoker]: runs one cardano-cli command and returns its stdout
//   - [Namer]: produces collision-free artifact paths
//   - [ArtifactWriter]: writes JSON artifacts (scripts, metadata, tx files)
//   - [Logger]: structured logging abstraction
//
// The core (internal/serialize, internal/command, pkg/cardanocli) depends only
// on these interfaces. internal/adapters implements them with os/exec, the
// file system and uuid.
package ports
