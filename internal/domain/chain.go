package domain

import (
	"encoding/json"
	"fmt"
)

// Utxo is one row of a `query utxo` table. It is a snapshot and is never
// mutated after decoding.
type Utxo struct {
	TxHash    string  `json:"txHash"`
	TxID      uint32  `json:"txId"`
	Value     Value   `json:"value"`
	DatumHash *string `json:"datumHash,omitempty"`
}

// TxIn returns an input spending this output.
func (u Utxo) TxIn() TxIn {
	return TxIn{TxHash: u.TxHash, TxID: u.TxID}
}

// Tip is the node's chain tip as printed by `query tip`.
type Tip struct {
	Block        uint64 `json:"block"`
	Epoch        uint64 `json:"epoch"`
	Era          string `json:"era"`
	Hash         string `json:"hash"`
	Slot         uint64 `json:"slot"`
	SyncProgress string `json:"syncProgress,omitempty"`
}

// ProtocolParams is the protocol-parameters document. The raw JSON is kept as
// fetched; a few fee-related fields are also decoded.
type ProtocolParams struct {
	Raw json.RawMessage

	TxFeeFixed      uint64 `json:"txFeeFixed"`
	TxFeePerByte    uint64 `json:"txFeePerByte"`
	UtxoCostPerByte uint64 `json:"utxoCostPerByte"`
	MaxTxSize       uint64 `json:"maxTxSize"`
}

// UnmarshalJSON keeps the raw document alongside the decoded fields.
func (p *ProtocolParams) UnmarshalJSON(data []byte) error {
	type fields ProtocolParams
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProtocolParams(f)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the document exactly as fetched.
func (p ProtocolParams) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("{}"), nil
	}
	return p.Raw, nil
}

// Get decodes one top-level field of the raw document into dst.
func (p ProtocolParams) Get(key string, dst any) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(p.Raw, &doc); err != nil {
		return err
	}
	raw, ok := doc[key]
	if !ok {
		return fmt.Errorf("protocol parameter %q not present", key)
	}
	return json.Unmarshal(raw, dst)
}
