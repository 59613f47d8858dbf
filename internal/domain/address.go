package domain

import (
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/gouroboros/ledger/common"
)

// ValidateAddress checks that addr decodes as a Cardano address (bech32
// Shelley or base58 Byron) belonging to network.
func ValidateAddress(field, addr string, network Network) error {
	if addr == "" {
		return Invalid(field, "address is empty")
	}
	parsed, err := common.NewAddress(addr)
	if err != nil {
		return Invalid(field, fmt.Sprintf("malformed address %q: %v", addr, err))
	}
	if parsed.NetworkId() != network.AddressNetworkID() {
		return Invalid(field, fmt.Sprintf("address %q does not belong to %s", addr, network))
	}
	return nil
}

// AddressInfo is the decoded output of `address info`.
type AddressInfo struct {
	Address  string `json:"address"`
	Base16   string `json:"base16"`
	Encoding string `json:"encoding"`
	Era      string `json:"era"`
	Type     string `json:"type"`
}

// AddressBuildOptions selects the credentials of `address build`. Scripts
// are JSON documents written to temp files before the call.
type AddressBuildOptions struct {
	PaymentVkey   string          `json:"paymentVkey,omitempty"`
	StakeVkey     string          `json:"stakeVkey,omitempty"`
	PaymentScript json.RawMessage `json:"paymentScript,omitempty"`
	StakeScript   json.RawMessage `json:"stakeScript,omitempty"`
}

// Validate requires a payment credential and rejects two of them.
func (o AddressBuildOptions) Validate() error {
	hasKey := o.PaymentVkey != ""
	hasScript := len(o.PaymentScript) > 0
	switch {
	case !hasKey && !hasScript:
		return Invalid("payment credential", "paymentVkey or paymentScript required")
	case hasKey && hasScript:
		return Invalid("payment credential", "paymentVkey and paymentScript are mutually exclusive")
	}
	if o.StakeVkey != "" && len(o.StakeScript) > 0 {
		return Invalid("stake credential", "stakeVkey and stakeScript are mutually exclusive")
	}
	return nil
}

// KeyPair is the pair of files written by `address key-gen`.
type KeyPair struct {
	VkeyFilePath string `json:"vkey"`
	SkeyFilePath string `json:"skey"`
}
