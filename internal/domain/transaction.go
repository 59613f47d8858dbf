package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ExecutionUnits is a Plutus execution budget. It reads and writes as the
// two-element JSON array [steps, memory].
type ExecutionUnits struct {
	Steps  uint64
	Memory uint64
}

// String renders the budget as cardano-cli expects it: (steps,memory).
func (u ExecutionUnits) String() string {
	return "(" + strconv.FormatUint(u.Steps, 10) + "," + strconv.FormatUint(u.Memory, 10) + ")"
}

func (u ExecutionUnits) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{u.Steps, u.Memory})
}

func (u *ExecutionUnits) UnmarshalJSON(data []byte) error {
	var pair [2]uint64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("execution units: %w", err)
	}
	u.Steps, u.Memory = pair[0], pair[1]
	return nil
}

// ScriptWitness is the Plutus or native script material attached to a
// spending input, withdrawal, certificate or mint.
type ScriptWitness struct {
	Script         json.RawMessage `json:"script,omitempty"`
	Datum          json.RawMessage `json:"datum,omitempty"`
	Redeemer       json.RawMessage `json:"redeemer,omitempty"`
	ExecutionUnits *ExecutionUnits `json:"executionUnits,omitempty"`
}

// TxIn references a UTXO to spend.
type TxIn struct {
	TxHash string `json:"txHash"`
	TxID   uint32 `json:"txId"`
	ScriptWitness
}

// Ref renders the input as <hash>#<index>.
func (in TxIn) Ref() string {
	return in.TxHash + "#" + strconv.FormatUint(uint64(in.TxID), 10)
}

// TxOut is a destination and the value sent to it.
type TxOut struct {
	Address     string          `json:"address"`
	Value       Value           `json:"value"`
	DatumHash   string          `json:"datumHash,omitempty"`
	InlineDatum json.RawMessage `json:"inlineDatum,omitempty"`
}

// MintAction is either minting or burning an asset.
type MintAction string

const (
	ActionMint MintAction = "mint"
	ActionBurn MintAction = "burn"
)

// Mint describes one asset minted or burned by the transaction.
type Mint struct {
	Action   MintAction `json:"action"`
	Quantity string     `json:"quantity"`
	Asset    string     `json:"asset"`
	ScriptWitness
}

// Withdrawal claims staking rewards.
type Withdrawal struct {
	StakingAddress string `json:"stakingAddress"`
	Reward         string `json:"reward"`
	ScriptWitness
}

// Certificate references a certificate file included in the transaction.
type Certificate struct {
	Cert string `json:"cert"`
	ScriptWitness
}

// Transaction is the high-level description compiled into
// `transaction build` and `transaction build-raw`.
type Transaction struct {
	TxIn            []TxIn            `json:"txIn"`
	TxOut           []TxOut           `json:"txOut"`
	TxInCollateral  []TxIn            `json:"txInCollateral,omitempty"`
	ChangeAddress   string            `json:"changeAddress,omitempty"`
	Mint            []Mint            `json:"mint,omitempty"`
	Withdrawals     []Withdrawal      `json:"withdrawals,omitempty"`
	Certs           []Certificate     `json:"certs,omitempty"`
	Metadata        json.RawMessage   `json:"metadata,omitempty"`
	AuxScript       []json.RawMessage `json:"auxScript,omitempty"`
	Fee             *uint64           `json:"fee,omitempty"`
	InvalidBefore   *uint64           `json:"invalidBefore,omitempty"`
	InvalidAfter    *uint64           `json:"invalidAfter,omitempty"`
	ScriptInvalid   bool              `json:"scriptInvalid,omitempty"`
	WitnessOverride int               `json:"witnessOverride,omitempty"`
}

// Validate rejects descriptors cardano-cli cannot build. It runs before any
// file is written or process started.
func (t *Transaction) Validate(network Network) error {
	if t == nil {
		return Invalid("transaction", "descriptor is nil")
	}
	if len(t.TxIn) == 0 {
		return Invalid("txIn", "at least one input is required")
	}
	if len(t.TxOut) == 0 {
		return Invalid("txOut", "at least one output is required")
	}
	for i, in := range t.TxIn {
		if in.TxHash == "" {
			return Invalid(fmt.Sprintf("txIn[%d]", i), "txHash is empty")
		}
	}
	for i, in := range t.TxInCollateral {
		if in.TxHash == "" {
			return Invalid(fmt.Sprintf("txInCollateral[%d]", i), "txHash is empty")
		}
	}
	for i, out := range t.TxOut {
		field := fmt.Sprintf("txOut[%d]", i)
		if err := ValidateAddress(field, out.Address, network); err != nil {
			return err
		}
		if len(out.Value) == 0 {
			return Invalid(field, "value is empty")
		}
		if err := out.Value.Validate(); err != nil {
			return err
		}
		if out.DatumHash != "" && len(out.InlineDatum) > 0 {
			return Invalid(field, "datumHash and inlineDatum are mutually exclusive")
		}
	}
	if t.ChangeAddress != "" {
		if err := ValidateAddress("changeAddress", t.ChangeAddress, network); err != nil {
			return err
		}
	}
	for i, m := range t.Mint {
		field := fmt.Sprintf("mint[%d]", i)
		if m.Action != ActionMint && m.Action != ActionBurn {
			return Invalid(field, "action must be mint or burn")
		}
		if m.Asset == "" || m.Asset == Lovelace {
			return Invalid(field, "asset must name a policy id")
		}
	}
	for i, w := range t.Withdrawals {
		if w.StakingAddress == "" {
			return Invalid(fmt.Sprintf("withdrawals[%d]", i), "stakingAddress is empty")
		}
	}
	for i, c := range t.Certs {
		if c.Cert == "" {
			return Invalid(fmt.Sprintf("certs[%d]", i), "cert path is empty")
		}
	}
	if t.InvalidBefore != nil && t.InvalidAfter != nil && *t.InvalidBefore > *t.InvalidAfter {
		return Invalid("validity window", fmt.Sprintf("invalidBefore %d is after invalidAfter %d", *t.InvalidBefore, *t.InvalidAfter))
	}
	if t.WitnessOverride < 0 {
		return Invalid("witnessOverride", "must not be negative")
	}
	return nil
}
