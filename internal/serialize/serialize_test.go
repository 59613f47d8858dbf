package serialize

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/cardanocli/internal/domain"
)

const policy = "d5e6bf0500378d4f0da4e8dde6becec7621cd8cbf5cbb9b87013d4cc"

// memWriter records artifacts instead of touching the file system.
type memWriter struct {
	files map[string][]byte
	order []string
}

func newMemWriter() *memWriter { return &memWriter{files: map[string][]byte{}} }

func (m *memWriter) WriteJSON(kind string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/work/tmp/%s_%d.json", kind, len(m.order))
	m.files[path] = data
	m.order = append(m.order, path)
	return path, nil
}

func (m *memWriter) WriteFile(path string, data []byte) error {
	m.files[path] = data
	m.order = append(m.order, path)
	return nil
}

func TestMultiAsset(t *testing.T) {
	tests := []struct {
		name  string
		value domain.Value
		want  string
	}{
		{
			name:  "lovelace only",
			value: domain.NewValue("2000000"),
			want:  "2000000",
		},
		{
			name:  "lovelace and one asset",
			value: domain.NewValue("2000000").Add(policy+".4d494c4b", "10"),
			want:  "2000000+10 " + policy + ".4d494c4b",
		},
		{
			name: "assets sharing a policy keep insertion order",
			value: domain.NewValue("1500000").
				Add(policy+".74657374", "1").
				Add(policy+".616263", "42"),
			want: "1500000+1 " + policy + ".74657374+42 " + policy + ".616263",
		},
		{
			name:  "lovelace listed last is still printed first",
			value: domain.Value{{Unit: policy + ".616263", Quantity: "3"}, {Unit: domain.Lovelace, Quantity: "7"}},
			want:  "7+3 " + policy + ".616263",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MultiAsset(tt.value))
		})
	}
}

func TestParseValue_RoundTrip(t *testing.T) {
	values := []domain.Value{
		domain.NewValue("2000000"),
		domain.NewValue("2000000").Add(policy+".4d494c4b", "10"),
		domain.NewValue("1500000").Add(policy+".74657374", "1").Add(policy+".616263", "99999999999999999999"),
	}
	for _, v := range values {
		got, datum, err := ParseValue(MultiAsset(v))
		require.NoError(t, err)
		assert.Nil(t, datum)
		assert.Equal(t, v, got)
	}
}

func TestParseValue_UtxoColumn(t *testing.T) {
	got, datum, err := ParseValue(`1000000 lovelace + 5 ` + policy + `.616263 + TxOutDatumHash ScriptDataInAlonzoEra "abc123"`)
	require.NoError(t, err)
	require.NotNil(t, datum)
	assert.Equal(t, "abc123", *datum)
	assert.Equal(t, domain.NewValue("1000000").Add(policy+".616263", "5"), got)

	got, datum, err = ParseValue(`1000000 lovelace + TxOutDatumNone`)
	require.NoError(t, err)
	assert.Nil(t, datum)
	assert.Equal(t, domain.NewValue("1000000"), got)
}

func TestParseValue_Errors(t *testing.T) {
	_, _, err := ParseValue("1000000+5")
	assert.Error(t, err)

	_, _, err = ParseValue("1000000 lovelace + TxOutDatumUnknown x")
	assert.Error(t, err)
}

func TestTxIn(t *testing.T) {
	w := newMemWriter()
	units := domain.ExecutionUnits{Steps: 200000000, Memory: 1000000}
	ins := []domain.TxIn{
		{TxHash: "aa", TxID: 0},
		{
			TxHash: "bb",
			TxID:   3,
			ScriptWitness: domain.ScriptWitness{
				Script:         json.RawMessage(`{"type": "PlutusScriptV2", "cborHex": "4e4d01"}`),
				Datum:          json.RawMessage(`{ "int": 42 }`),
				Redeemer:       json.RawMessage(`{"constructor": 0, "fields": []}`),
				ExecutionUnits: &units,
			},
		},
	}

	got, err := TxIn(w, ins, false)
	require.NoError(t, err)
	require.Len(t, w.order, 1)
	assert.Equal(t, []string{
		"--tx-in", "aa#0",
		"--tx-in", "bb#3",
		"--tx-in-script-file", w.order[0],
		"--tx-in-datum-value", `{"int":42}`,
		"--tx-in-redeemer-value", `{"constructor":0,"fields":[]}`,
		"--tx-in-execution-units", "(200000000,1000000)",
	}, got)
	assert.JSONEq(t, `{"type":"PlutusScriptV2","cborHex":"4e4d01"}`, string(w.files[w.order[0]]))

	collateral, err := TxIn(w, ins, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"--tx-in-collateral", "aa#0", "--tx-in-collateral", "bb#3"}, collateral)
	assert.Len(t, w.order, 1, "collateral must not write scripts")
}

func TestTxOut(t *testing.T) {
	outs := []domain.TxOut{
		{Address: "addr_test1vq", Value: domain.NewValue("2000000"), DatumHash: "abc"},
		{Address: "addr_test1vr", Value: domain.NewValue("1000000"), InlineDatum: json.RawMessage(`{"int": 1}`)},
	}
	assert.Equal(t, []string{
		"--tx-out", "addr_test1vq+2000000",
		"--tx-out-datum-hash", "abc",
		"--tx-out", "addr_test1vr+1000000",
		"--tx-out-inline-datum-value", `{"int":1}`,
	}, TxOut(outs))
}

func TestMint(t *testing.T) {
	w := newMemWriter()
	mints := []domain.Mint{
		{Action: domain.ActionMint, Quantity: "10", Asset: policy + ".616263",
			ScriptWitness: domain.ScriptWitness{Script: json.RawMessage(`{"type":"sig","keyHash":"ff"}`)}},
		{Action: domain.ActionBurn, Quantity: "2", Asset: policy + ".646566"},
	}
	got, err := Mint(w, mints)
	require.NoError(t, err)
	require.Len(t, w.order, 1)
	assert.Equal(t, []string{
		"--mint", "10 " + policy + ".616263+-2 " + policy + ".646566",
		"--minting-script-file", w.order[0],
	}, got)
}

func TestWithdrawalsAndCertificates(t *testing.T) {
	w := newMemWriter()
	ws, err := Withdrawals(w, []domain.Withdrawal{{StakingAddress: "stake1u9", Reward: "5000"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--withdrawal", "stake1u9+5000"}, ws)

	certs, err := Certificates(w, []domain.Certificate{{
		Cert:          "/keys/stake.cert",
		ScriptWitness: domain.ScriptWitness{Script: json.RawMessage(`{"type":"all","scripts":[]}`)},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--certificate-file", "/keys/stake.cert", "--certificate-script-file", w.order[0]}, certs)
}

func TestEmptyPartsProduceNoArgs(t *testing.T) {
	w := newMemWriter()
	f, err := Transaction(w, &domain.Transaction{})
	require.NoError(t, err)
	assert.Nil(t, f.Args())
	assert.Empty(t, w.order)
	assert.Nil(t, SigningKeys(nil))
	assert.Nil(t, WitnessFiles(nil))
}

func TestTransaction_Order(t *testing.T) {
	w := newMemWriter()
	tx := &domain.Transaction{
		TxIn:           []domain.TxIn{{TxHash: "aa", TxID: 1}},
		TxOut:          []domain.TxOut{{Address: "addr1q", Value: domain.NewValue("5")}},
		TxInCollateral: []domain.TxIn{{TxHash: "cc", TxID: 0}},
		Metadata:       json.RawMessage(`{"674":{"msg":["hi"]}}`),
		AuxScript:      []json.RawMessage{json.RawMessage(`{"type":"sig","keyHash":"ee"}`)},
	}
	f, err := Transaction(w, tx)
	require.NoError(t, err)
	require.Len(t, w.order, 2)
	assert.Equal(t, []string{
		"--tx-in", "aa#1",
		"--tx-out", "addr1q+5",
		"--tx-in-collateral", "cc#0",
		"--auxiliary-script-file", w.order[0],
		"--metadata-json-file", w.order[1],
	}, f.Args())
	assert.Contains(t, w.order[1], "/metadata_")
	assert.Contains(t, w.order[0], "/script_")
}
