package cardanocli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
)

const (
	testAddr   = "addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x"
	testTxHash = "4f9cba4b33d7b6c20bfe8e4ebb9bdcc1fbb7fb1f1bd5d6b2e1e1f0b1f4b5a6c7"
	testParams = `{"txFeeFixed":155381,"txFeePerByte":44,"utxoCostPerByte":4310,"maxTxSize":16384}`
	testTip    = `{"block":10,"epoch":4,"era":"Babbage","hash":"ab12","slot":1000,"syncProgress":"100.00"}`
)

// subcommand matches a Command by its leading words.
type subcommand string

func (s subcommand) Matches(x interface{}) bool {
	cmd, ok := x.(ports.Command)
	return ok && cmd.Subcommand() == string(s)
}

func (s subcommand) String() string { return "command " + string(s) }

func argAfter(cmd ports.Command, flag string) string {
	for i, a := range cmd.Args {
		if a == flag && i+1 < len(cmd.Args) {
			return cmd.Args[i+1]
		}
	}
	return ""
}

// writeParams stands in for `query protocol-parameters --out-file`.
func writeParams(_ context.Context, cmd ports.Command) (string, error) {
	return "", os.WriteFile(argAfter(cmd, "--out-file"), []byte(testParams), 0o600)
}

func newTestClient(t *testing.T, inv Invoker, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg, WithInvoker(inv))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func u64(v uint64) *uint64 { return &v }

func sampleTx() *Transaction {
	return &Transaction{
		TxIn:  []TxIn{{TxHash: testTxHash, TxID: 0}},
		TxOut: []TxOut{{Address: testAddr, Value: NewValue("2000000")}},
	}
}

func TestClient_TransactionBuildRaw_ResolvesBoundsFromTip(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	var built ports.Command
	gomock.InOrder(
		inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).DoAndReturn(writeParams),
		inv.EXPECT().Invoke(gomock.Any(), subcommand("query tip")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				assert.Equal(t, "cardano-cli query tip --mainnet --cardano-mode", cmd.String())
				return testTip, nil
			}),
		inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction build-raw")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				built = cmd
				return "", nil
			}),
	)

	out, err := c.TransactionBuildRaw(context.Background(), sampleTx())
	require.NoError(t, err)

	matched, err := filepath.Match(filepath.Join(c.Dir(), "tmp", "tx_*.raw"), out)
	require.NoError(t, err)
	assert.True(t, matched, out)

	assert.Equal(t, "11000", argAfter(built, "--invalid-hereafter"))
	assert.Equal(t, "0", argAfter(built, "--invalid-before"))
	assert.Equal(t, "0", argAfter(built, "--fee"))
	assert.Equal(t, out, argAfter(built, "--out-file"))
	assert.Equal(t, filepath.Join(c.Dir(), "tmp", paramsFileName), argAfter(built, "--protocol-params-file"))
	assert.Equal(t, testAddr+"+2000000", argAfter(built, "--tx-out"))
	assert.Equal(t, testTxHash+"#0", argAfter(built, "--tx-in"))
	assert.Contains(t, built.Args, "--babbage-era")
	assert.NotContains(t, built.Args, "--change-address")
}

func TestClient_TransactionBuildRaw_MemoizesProtocolParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv, func(cfg *Config) { cfg.Era = "conway" })

	inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).DoAndReturn(writeParams).Times(1)
	inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction build-raw")).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
			assert.Equal(t, "200", argAfter(cmd, "--invalid-hereafter"))
			assert.Equal(t, "50", argAfter(cmd, "--invalid-before"))
			assert.Equal(t, "170000", argAfter(cmd, "--fee"))
			assert.Contains(t, cmd.Args, "--conway-era")
			return "", nil
		}).Times(2)

	tx := sampleTx()
	tx.InvalidAfter = u64(200)
	tx.InvalidBefore = u64(50)
	tx.Fee = u64(170000)
	for i := 0; i < 2; i++ {
		_, err := c.TransactionBuildRaw(context.Background(), tx)
		require.NoError(t, err)
	}
	assert.Equal(t, filepath.Join(c.Dir(), "tmp", paramsFileName), c.ProtocolParamsPath())
}

func TestClient_TransactionBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv, func(cfg *Config) { cfg.ProtocolParamsPath = "/srv/params.json" })

	gomock.InOrder(
		inv.EXPECT().Invoke(gomock.Any(), subcommand("query tip")).Return(testTip, nil),
		inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction build")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				assert.Equal(t, testAddr, argAfter(cmd, "--change-address"))
				assert.Equal(t, "/srv/params.json", argAfter(cmd, "--protocol-params-file"))
				assert.Equal(t, "2", argAfter(cmd, "--witness-override"))
				assert.NotContains(t, cmd.Args, "--fee")
				assert.Contains(t, cmd.Args, "--mainnet")
				return "Estimated transaction fee: Lovelace 171353\n", nil
			}),
	)

	tx := sampleTx()
	tx.ChangeAddress = testAddr
	tx.WitnessOverride = 2
	_, err := c.TransactionBuild(context.Background(), tx)
	require.NoError(t, err)
}

func TestClient_ValidationFailsBeforeInvocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl) // no expectations: any call fails the test
	c := newTestClient(t, inv)
	ctx := context.Background()

	noInputs := sampleTx()
	noInputs.TxIn = nil
	badWindow := sampleTx()
	badWindow.InvalidBefore, badWindow.InvalidAfter = u64(10), u64(5)
	testnetAddr := sampleTx()
	testnetAddr.TxOut[0].Address = "addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerspjrlsz"
	noChange := sampleTx()

	tests := []struct {
		name string
		call func() error
	}{
		{"empty txIn", func() error { _, err := c.TransactionBuildRaw(ctx, noInputs); return err }},
		{"invalidBefore after invalidAfter", func() error { _, err := c.TransactionBuildRaw(ctx, badWindow); return err }},
		{"address on another network", func() error { _, err := c.TransactionBuildRaw(ctx, testnetAddr); return err }},
		{"build without change address", func() error { _, err := c.TransactionBuild(ctx, noChange); return err }},
		{"sign without keys", func() error { _, err := c.TransactionSign(ctx, SignOptions{TxBody: "a.raw"}); return err }},
		{"assemble without witnesses", func() error { _, err := c.TransactionAssemble(ctx, AssembleOptions{TxBody: "a.raw"}); return err }},
		{"txid without file", func() error { _, err := c.TransactionTxid(ctx, ViewOptions{}); return err }},
		{"submit without source", func() error { _, err := c.TransactionSubmit(ctx, SubmitOptions{}); return err }},
		{"utxo without address", func() error { _, err := c.QueryUtxo(ctx, " "); return err }},
		{"min value with bad quantity", func() error {
			_, err := c.TransactionCalculateMinValue(ctx, Value{{Unit: Lovelace, Quantity: "1.5"}})
			return err
		}},
		{"hash of invalid JSON", func() error { _, err := c.TransactionHashScriptData(ctx, []byte("{")); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestClient_TransactionWitness(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	_, err := c.TransactionWitness(context.Background(), WitnessOptions{TxBody: "body.raw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script-file or signing-key required for transaction witness command")

	inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction witness")).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
			assert.Equal(t, "pay.skey", argAfter(cmd, "--signing-key-file"))
			assert.Empty(t, argAfter(cmd, "--script-file"))
			return "", nil
		})
	out, err := c.TransactionWitness(context.Background(), WitnessOptions{TxBody: "body.raw", SigningKey: "pay.skey"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, ".witness"))
}

func TestClient_TransactionSubmit_Envelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	var submitted string
	gomock.InOrder(
		inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction submit")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				submitted = argAfter(cmd, "--tx-file")
				return "Transaction successfully submitted.\n", nil
			}),
		inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction txid")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				assert.Equal(t, submitted, argAfter(cmd, "--tx-file"))
				return testTxHash + "\n", nil
			}),
	)

	env := &TextEnvelope{Type: "Tx BabbageEra", CborHex: "820000"}
	id, err := c.TransactionSubmit(context.Background(), SubmitOptions{Tx: env})
	require.NoError(t, err)
	assert.Equal(t, testTxHash, id)

	data, err := os.ReadFile(submitted)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cborHex":"820000"`)
	assert.True(t, strings.HasSuffix(submitted, ".signed"))
}

func TestClient_CalculateMinFee_RefreshesEveryCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).DoAndReturn(writeParams).Times(2)
	inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction calculate-min-fee")).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
			assert.Equal(t, "1", argAfter(cmd, "--tx-in-count"))
			assert.Equal(t, "2", argAfter(cmd, "--tx-out-count"))
			assert.Equal(t, "1", argAfter(cmd, "--witness-count"))
			return "171353 Lovelace\n", nil
		}).Times(2)

	opts := MinFeeOptions{
		TxBody:       "body.raw",
		TxIn:         make([]TxIn, 1),
		TxOut:        make([]TxOut, 2),
		WitnessCount: 1,
	}
	for i := 0; i < 2; i++ {
		fee, err := c.TransactionCalculateMinFee(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, "171353", fee)
	}
}

func TestClient_CalculateMinValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	value := NewValue("0").Add("a0b1.746f6b656e", "5")
	gomock.InOrder(
		inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).DoAndReturn(writeParams),
		inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction calculate-min-required-utxo")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
				assert.Equal(t, "0+5 a0b1.746f6b656e", argAfter(cmd, "--tx-out"))
				return "Lovelace 1155080\n", nil
			}),
	)
	minValue, err := c.TransactionCalculateMinValue(context.Background(), value)
	require.NoError(t, err)
	assert.Equal(t, "1155080", minValue)
}

func TestClient_FailedParamFetchKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv, func(cfg *Config) { cfg.ProtocolParamsPath = "/srv/params.json" })

	cliErr := &domain.CLIError{ExitCode: 1, Stderr: "Network.Socket.connect: does not exist (No such file or directory)"}
	inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).Return("", cliErr)

	_, err := c.RefreshProtocolParams(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCLI)
	assert.Equal(t, cliErr.Stderr, err.Error())
	assert.Equal(t, "/srv/params.json", c.ProtocolParamsPath())
}

func TestClient_ConcurrentBuildsFetchParamsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	const workers = 8
	inv.EXPECT().Invoke(gomock.Any(), subcommand("query protocol-parameters")).DoAndReturn(writeParams).Times(1)
	inv.EXPECT().Invoke(gomock.Any(), subcommand("transaction build-raw")).Return("", nil).Times(workers)

	tx := sampleTx()
	tx.InvalidAfter = u64(500)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.TransactionBuildRaw(context.Background(), tx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestClient_QueryUtxo(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	table := "                           TxHash                                 TxIx        Amount\n" +
		"--------------------------------------------------------------------------------------\n" +
		testTxHash + "     1        1500000 lovelace + 7 a0b1.746f6b656e + TxOutDatumNone\n"
	inv.EXPECT().Invoke(gomock.Any(), subcommand("query utxo")).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
			assert.Equal(t, testAddr, argAfter(cmd, "--address"))
			return table, nil
		})

	utxos, err := c.QueryUtxo(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, testTxHash, utxos[0].TxHash)
	assert.Equal(t, uint32(1), utxos[0].TxID)
	assert.Equal(t, "1500000", utxos[0].Value.Lovelace())
	q, ok := utxos[0].Value.Get("a0b1.746f6b656e")
	require.True(t, ok)
	assert.Equal(t, "7", q)
	assert.Nil(t, utxos[0].DatumHash)
}

func TestClient_AddressKeyGen(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	inv.EXPECT().Invoke(gomock.Any(), subcommand("address key-gen")).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (string, error) {
			for _, f := range []string{"--verification-key-file", "--signing-key-file"} {
				require.NoError(t, os.WriteFile(argAfter(cmd, f), []byte("{}"), 0o600))
			}
			return "", nil
		})

	keys, err := c.AddressKeyGen(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Dir(), "priv", "wallet", "alice", "alice.payment.vkey"), keys.VkeyFilePath)

	_, err = c.AddressKeyGen(context.Background(), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "already exists")
}

func TestClient_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := NewMockInvoker(ctrl)
	c := newTestClient(t, inv)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	_, err := c.QueryTip(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))
}

type recordingPlugin struct {
	name    string
	order   *[]string
	initErr error
	cfg     PluginConfig
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(_ context.Context, cfg PluginConfig) error {
	p.cfg = cfg
	*p.order = append(*p.order, "init "+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown(context.Context) error {
	*p.order = append(*p.order, "shutdown "+p.name)
	return nil
}

func TestClient_PluginLifecycle(t *testing.T) {
	var order []string
	a := &recordingPlugin{name: "a", order: &order}
	b := &recordingPlugin{name: "b", order: &order}

	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	c, err := New(cfg, WithInvoker(NewMockInvoker(gomock.NewController(t))), WithPlugin(a), WithPlugin(b))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Dir, "tmp"), a.cfg.TmpDir)
	require.NotNil(t, a.cfg.Cache)

	require.NoError(t, c.Close())
	assert.Equal(t, []string{"init a", "init b", "shutdown b", "shutdown a"}, order)
}

func TestClient_PluginInitFailure(t *testing.T) {
	var order []string
	a := &recordingPlugin{name: "a", order: &order}
	b := &recordingPlugin{name: "b", order: &order, initErr: fmt.Errorf("boom")}

	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	_, err := New(cfg, WithInvoker(NewMockInvoker(gomock.NewController(t))), WithPlugin(a), WithPlugin(b))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialize plugin b")
	assert.Equal(t, []string{"init a", "init b", "shutdown a"}, order)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	cfg.Network = "testnet"

	_, err := New(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
