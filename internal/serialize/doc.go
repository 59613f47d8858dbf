// Package serialize turns the structured parts of a transaction descriptor
// into cardano-cli argument fragments.
//
// Simple values (inputs, multi-asset quantities, withdrawals) are inlined.
// Scripts and metadata are always written to temp JSON files through a
// ports.ArtifactWriter, and the fragment references the file. An empty
// input yields a nil fragment so no dangling flag reaches the command.
package serialize
