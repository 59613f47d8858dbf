// Package units converts between lovelace and ada.
package units

import (
	"fmt"
	"math/big"
	"strings"
)

// LovelacePerAda is the scale between the display unit and the base unit.
const LovelacePerAda = 1_000_000

var scale = big.NewRat(LovelacePerAda, 1)

// ToLovelace converts an ada amount such as "1.5" to lovelace ("1500000").
// Fractions below one lovelace are rejected.
func ToLovelace(ada string) (string, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(ada))
	if !ok {
		return "", fmt.Errorf("invalid ada amount %q", ada)
	}
	r.Mul(r, scale)
	if !r.IsInt() {
		return "", fmt.Errorf("ada amount %q is more precise than one lovelace", ada)
	}
	return r.Num().String(), nil
}

// ToAda converts a lovelace amount to ada without trailing zeros
// ("1500000" -> "1.5").
func ToAda(lovelace string) (string, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(lovelace), 10)
	if !ok {
		return "", fmt.Errorf("invalid lovelace amount %q", lovelace)
	}
	s := new(big.Rat).SetFrac(n, big.NewInt(LovelacePerAda)).FloatString(6)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s, nil
}
