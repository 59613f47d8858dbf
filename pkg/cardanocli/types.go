package cardanocli

import "github.com/bft-labs/cardanocli/internal/domain"

// Re-exported data model.
type (
	Network        = domain.Network
	Asset          = domain.Asset
	Value          = domain.Value
	ExecutionUnits = domain.ExecutionUnits
	ScriptWitness  = domain.ScriptWitness
	TxIn           = domain.TxIn
	TxOut          = domain.TxOut
	Mint           = domain.Mint
	MintAction     = domain.MintAction
	Withdrawal     = domain.Withdrawal
	Certificate    = domain.Certificate
	Transaction    = domain.Transaction
	Utxo           = domain.Utxo
	Tip            = domain.Tip
	ProtocolParams = domain.ProtocolParams
	TextEnvelope   = domain.TextEnvelope
	AddressInfo    = domain.AddressInfo
	KeyPair        = domain.KeyPair

	AddressBuildOptions = domain.AddressBuildOptions
	SignOptions         = domain.SignOptions
	WitnessOptions      = domain.WitnessOptions
	AssembleOptions     = domain.AssembleOptions
	ViewOptions         = domain.ViewOptions
	MinFeeOptions       = domain.MinFeeOptions
	SubmitOptions       = domain.SubmitOptions

	ValidationError = domain.ValidationError
	CLIError        = domain.CLIError
	DecodeError     = domain.DecodeError
)

const (
	Lovelace   = domain.Lovelace
	ActionMint = domain.ActionMint
	ActionBurn = domain.ActionBurn
)

var (
	ErrValidation = domain.ErrValidation
	ErrCLI        = domain.ErrCLI
	ErrDecode     = domain.ErrDecode
	ErrClosed     = domain.ErrClosed

	NewValue = domain.NewValue
	Mainnet  = domain.Mainnet
	Testnet  = domain.Testnet
)
