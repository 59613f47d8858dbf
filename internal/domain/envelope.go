package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// TextEnvelope is the JSON wrapper cardano-cli reads and writes for keys,
// transaction bodies and signed transactions.
type TextEnvelope struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CborHex     string `json:"cborHex"`
}

// Validate checks the envelope carries well-formed CBOR.
func (e TextEnvelope) Validate() error {
	if e.Type == "" {
		return Invalid("tx", "envelope type is empty")
	}
	raw, err := hex.DecodeString(e.CborHex)
	if err != nil {
		return Invalid("tx", fmt.Sprintf("cborHex is not hex: %v", err))
	}
	if len(raw) == 0 {
		return Invalid("tx", "cborHex is empty")
	}
	if err := cbor.Wellformed(raw); err != nil {
		return Invalid("tx", fmt.Sprintf("cborHex is not well-formed CBOR: %v", err))
	}
	return nil
}
