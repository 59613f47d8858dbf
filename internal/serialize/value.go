package serialize

import (
	"fmt"
	"strings"

	"github.com/bft-labs/cardanocli/internal/domain"
)

// MultiAsset renders a value as cardano-cli's value expression: the bare
// lovelace quantity first, then "<qty> <policy.name>" for every other asset
// in insertion order, joined with "+".
func MultiAsset(v domain.Value) string {
	parts := []string{v.Lovelace()}
	for _, a := range v {
		if a.Unit == domain.Lovelace {
			continue
		}
		parts = append(parts, a.Quantity+" "+a.Unit)
	}
	return strings.Join(parts, "+")
}

// ParseValue is the inverse of MultiAsset. It also accepts the value column
// of a `query utxo` row, where lovelace is printed as "<qty> lovelace".
// Datum markers are returned separately: the datum hash, if any, is the
// second result.
func ParseValue(s string) (domain.Value, *string, error) {
	var (
		value     domain.Value
		datumHash *string
	)
	for i, entry := range strings.Split(s, "+") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "TxOutDatum") {
			h, err := parseDatumMarker(entry)
			if err != nil {
				return nil, nil, err
			}
			if h != nil {
				datumHash = h
			}
			continue
		}
		qty, unit, found := strings.Cut(entry, " ")
		if !found {
			if i != 0 {
				return nil, nil, fmt.Errorf("value entry %q has no unit", entry)
			}
			unit = domain.Lovelace
		}
		value = append(value, domain.Asset{Unit: strings.TrimSpace(unit), Quantity: qty})
	}
	return value, datumHash, nil
}

// parseDatumMarker reads "TxOutDatumNone", "TxOutDatumHash <era> \"<hash>\""
// or "TxOutDatumHash \"<hash>\"". The hash is the last token with its quotes
// removed.
func parseDatumMarker(entry string) (*string, error) {
	fields := strings.Fields(entry)
	switch fields[0] {
	case "TxOutDatumNone":
		return nil, nil
	case "TxOutDatumHash", "TxOutDatumInline":
		if len(fields) < 2 {
			return nil, fmt.Errorf("datum marker %q has no hash", entry)
		}
		if fields[0] == "TxOutDatumInline" {
			return nil, nil
		}
		h := strings.Trim(fields[len(fields)-1], `"`)
		return &h, nil
	default:
		return nil, fmt.Errorf("unknown datum marker %q", fields[0])
	}
}
