// Package cardanocli builds, signs and submits Cardano transactions by
// driving the cardano-cli binary.
//
// A [Client] compiles high-level descriptors into cardano-cli invocations,
// writes the temp artifacts those invocations need, runs the binary and
// decodes its output into typed values.
//
// # Basic Usage
//
//	cfg := cardanocli.DefaultConfig()
//	cfg.Network = "testnet"
//	cfg.TestnetMagic = 1
//	cfg.Dir = "/var/lib/wallet"
//	cfg.SocketPath = "/ipc/node.socket"
//
//	client, err := cardanocli.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	utxos, err := client.QueryUtxo(ctx, addr)
//	raw, err := client.TransactionBuildRaw(ctx, &cardanocli.Transaction{
//	    TxIn:  []cardanocli.TxIn{utxos[0].TxIn()},
//	    TxOut: []cardanocli.TxOut{{Address: to, Value: cardanocli.NewValue("2000000")}},
//	})
//
// # Artifacts
//
// Generated files live under <Dir>/tmp and are named
// <kind>_<uuid><ext>: tx_*.raw, tx_*.signed, tx_*.witness, script_*.json,
// metadata_*.json. The client never deletes them.
//
// # Protocol parameters
//
// Operations that need a parameters file fetch it once per client and
// reuse the cached path. Fee and min-value calculations always refetch.
// [Client.InvalidateProtocolParams] drops the cache; the paramwatch plugin
// does so automatically when the cached file changes on disk.
//
// # Errors
//
// Inputs are validated before cardano-cli runs (errors.Is(err,
// ErrValidation)). cardano-cli failures carry its stderr unchanged
// (ErrCLI). Unexpected output is reported as ErrDecode. Nothing is retried;
// in particular a submission is never resent.
//
// # Concurrency
//
// A Client may be shared between goroutines; the parameter cache is guarded
// by a single writer. Two clients must not share a working directory.
package cardanocli
