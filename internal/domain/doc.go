// Package domain contains the data model shared by every layer of cardanocli.
//
// It has no dependency on process execution, the file system or logging. It
// holds the transaction descriptor and its parts, the entities decoded from
// cardano-cli responses, and the error taxonomy returned by the public API.
//
// # Entities
//
//   - [Transaction]: high-level description of a transaction to build
//   - [Utxo]: one row of a `query utxo` response
//   - [Tip]: the node's current chain tip
//   - [ProtocolParams]: pass-through protocol-parameters document
//   - [TextEnvelope]: the JSON envelope cardano-cli writes for tx files
//
// # Errors
//
// Three error kinds are distinguished and can be checked with errors.Is:
//   - [ErrValidation]: the input was rejected before cardano-cli ran
//   - [ErrCLI]: cardano-cli exited non-zero; stderr is kept verbatim
//   - [ErrDecode]: cardano-cli output did not have the expected shape
package domain
