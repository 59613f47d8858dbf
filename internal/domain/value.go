package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Lovelace is the unit name of the native currency.
const Lovelace = "lovelace"

// Asset is a quantity of one unit. Unit is "lovelace" or
// "<policyId>.<assetName>". Quantity is a base-10 integer of any size.
type Asset struct {
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

// Value is a multi-asset bundle. Order is insertion order and is kept when
// rendered for cardano-cli.
type Value []Asset

// NewValue returns a value holding only lovelace.
func NewValue(lovelace string) Value {
	return Value{{Unit: Lovelace, Quantity: lovelace}}
}

// Add returns a copy of v with the quantity set for unit. An existing unit
// keeps its position; v itself is never modified.
func (v Value) Add(unit, quantity string) Value {
	for i := range v {
		if v[i].Unit == unit {
			out := append(Value(nil), v...)
			out[i].Quantity = quantity
			return out
		}
	}
	out := make(Value, len(v), len(v)+1)
	copy(out, v)
	return append(out, Asset{Unit: unit, Quantity: quantity})
}

// Get returns the quantity for unit.
func (v Value) Get(unit string) (string, bool) {
	for _, a := range v {
		if a.Unit == unit {
			return a.Quantity, true
		}
	}
	return "", false
}

// Lovelace returns the lovelace quantity, or "0".
func (v Value) Lovelace() string {
	if q, ok := v.Get(Lovelace); ok {
		return q
	}
	return "0"
}

// Map returns the value as a unit to quantity map.
func (v Value) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, a := range v {
		m[a.Unit] = a.Quantity
	}
	return m
}

// Validate checks every quantity is an integer and every non-lovelace unit
// names a policy id.
func (v Value) Validate() error {
	for _, a := range v {
		if a.Unit == "" {
			return Invalid("value", "asset with empty unit")
		}
		if _, ok := new(big.Int).SetString(a.Quantity, 10); !ok {
			return Invalid("value", "quantity "+a.Quantity+" of "+a.Unit+" is not an integer")
		}
		if a.Unit != Lovelace && strings.ContainsAny(a.Unit, " +") {
			return Invalid("value", "unit "+a.Unit+" contains a separator")
		}
	}
	return nil
}

// MarshalJSON writes the value as a JSON object in insertion order:
// {"lovelace": "2000000", ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		unit, err := json.Marshal(a.Unit)
		if err != nil {
			return nil, err
		}
		qty, err := json.Marshal(a.Quantity)
		if err != nil {
			return nil, err
		}
		b.Write(unit)
		b.WriteByte(':')
		b.Write(qty)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts either an object keyed by unit (key order is kept)
// or an array of {"unit", "quantity"} entries. Quantities may be JSON
// strings or numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var assets []Asset
		if err := json.Unmarshal(trimmed, &assets); err != nil {
			return err
		}
		*v = assets
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("value: expected object or array")
	}
	out := Value{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch q := valTok.(type) {
		case string:
			out = append(out, Asset{Unit: key, Quantity: q})
		case json.Number:
			out = append(out, Asset{Unit: key, Quantity: q.String()})
		default:
			return fmt.Errorf("value: quantity of %s must be a string or number", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*v = out
	return nil
}
