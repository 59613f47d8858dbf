// Package decode parses cardano-cli output into domain types.
//
// Every parser here depends on the textual layout of one cardano-cli
// version. Keep grammar drift fixes inside this package.
package decode

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/serialize"
)

// Token positions of single-number outputs.
const (
	// FeeTokenIndex: "174345 Lovelace".
	FeeTokenIndex = 0
	// MinValueTokenIndex: "Lovelace 999978" (or "Coin 999978").
	MinValueTokenIndex = 1
)

var whitespace = regexp.MustCompile(`\s+`)

// Collapse replaces every run of whitespace with a single space.
func Collapse(s string) string {
	return whitespace.ReplaceAllString(s, " ")
}

func decodeErr(op, raw string, err error) error {
	return &domain.DecodeError{Op: op, Raw: raw, Err: err}
}

// Tip decodes `query tip` JSON.
func Tip(out string) (domain.Tip, error) {
	var tip domain.Tip
	if err := json.Unmarshal([]byte(out), &tip); err != nil {
		return domain.Tip{}, decodeErr("query tip", out, err)
	}
	return tip, nil
}

// ProtocolParams decodes a protocol-parameters document.
func ProtocolParams(data []byte) (domain.ProtocolParams, error) {
	var params domain.ProtocolParams
	if err := json.Unmarshal(data, &params); err != nil {
		return domain.ProtocolParams{}, decodeErr("query protocol-parameters", string(data), err)
	}
	return params, nil
}

// UtxoTable decodes the table printed by `query utxo`:
//
//	                           TxHash                                 TxIx        Amount
//	--------------------------------------------------------------------------------------
//	4f9c...f1     0        1000000 lovelace + TxOutDatumNone
//
// The two header lines and the trailing line are dropped. A table with no
// rows decodes to an empty slice.
func UtxoTable(out string) ([]domain.Utxo, error) {
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		return []domain.Utxo{}, nil
	}
	rows := lines[2 : len(lines)-1]

	utxos := make([]domain.Utxo, 0, len(rows))
	for _, raw := range rows {
		row := strings.TrimSpace(Collapse(raw))
		if row == "" {
			continue
		}
		tokens := strings.Split(row, " ")
		if len(tokens) < 3 {
			return nil, decodeErr("query utxo", out, fmt.Errorf("row %q has too few columns", row))
		}
		index, err := strconv.ParseUint(tokens[1], 10, 32)
		if err != nil {
			return nil, decodeErr("query utxo", out, fmt.Errorf("row %q: output index: %w", row, err))
		}
		value, datumHash, err := serialize.ParseValue(strings.Join(tokens[2:], " "))
		if err != nil {
			return nil, decodeErr("query utxo", out, fmt.Errorf("row %q: %w", row, err))
		}
		utxos = append(utxos, domain.Utxo{
			TxHash:    tokens[0],
			TxID:      uint32(index),
			Value:     value,
			DatumHash: datumHash,
		})
	}
	return utxos, nil
}

// NumericToken returns token idx of the whitespace-normalised output.
func NumericToken(op, out string, idx int) (string, error) {
	tokens := strings.Fields(out)
	if idx >= len(tokens) {
		return "", decodeErr(op, out, fmt.Errorf("expected at least %d tokens, got %d", idx+1, len(tokens)))
	}
	tok := tokens[idx]
	if _, err := strconv.ParseUint(tok, 10, 64); err != nil {
		return "", decodeErr(op, out, fmt.Errorf("token %q is not a quantity", tok))
	}
	return tok, nil
}

// Fee extracts the quantity from `transaction calculate-min-fee`.
func Fee(out string) (string, error) {
	return NumericToken("transaction calculate-min-fee", out, FeeTokenIndex)
}

// MinValue extracts the quantity from `transaction calculate-min-required-utxo`.
func MinValue(out string) (string, error) {
	return NumericToken("transaction calculate-min-required-utxo", out, MinValueTokenIndex)
}

// ID trims surrounding whitespace of hash and id outputs (txid, policy id,
// key hash, script data hash).
func ID(out string) string {
	return strings.TrimSpace(out)
}

// AddressInfo decodes `address info` JSON after whitespace normalisation.
func AddressInfo(out string) (domain.AddressInfo, error) {
	var info domain.AddressInfo
	if err := json.Unmarshal([]byte(Collapse(out)), &info); err != nil {
		return domain.AddressInfo{}, decodeErr("address info", out, err)
	}
	return info, nil
}
