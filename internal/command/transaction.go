package command

import (
	"strconv"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
	"github.com/bft-labs/cardanocli/internal/serialize"
)

// TransactionSign signs a body with one or more keys.
func (c Compiler) TransactionSign(opts domain.SignOptions, out string) ports.Command {
	return c.cmd(words("transaction", "sign"),
		flag("--tx-body-file", opts.TxBody),
		c.Network.Args(),
		serialize.SigningKeys(opts.SigningKeys),
		flag("--out-file", out))
}

// TransactionWitness creates a detached witness from a script, a key, or both.
func (c Compiler) TransactionWitness(opts domain.WitnessOptions, out string) ports.Command {
	return c.cmd(words("transaction", "witness"),
		flag("--tx-body-file", opts.TxBody),
		c.Network.Args(),
		flag("--out-file", out),
		flag("--script-file", opts.ScriptFile),
		flag("--signing-key-file", opts.SigningKey))
}

// TransactionAssemble combines a body with witness files.
func (c Compiler) TransactionAssemble(opts domain.AssembleOptions, out string) ports.Command {
	return c.cmd(words("transaction", "assemble"),
		flag("--tx-body-file", opts.TxBody),
		serialize.WitnessFiles(opts.WitnessFiles),
		flag("--out-file", out))
}

// TransactionSubmit submits a signed transaction file.
func (c Compiler) TransactionSubmit(txFile string) ports.Command {
	return c.cmd(words("transaction", "submit"), c.Network.Args(), flag("--tx-file", txFile))
}

func viewArgs(opts domain.ViewOptions) []string {
	if opts.TxBody != "" {
		return []string{"--tx-body-file", opts.TxBody}
	}
	return []string{"--tx-file", opts.TxFile}
}

// TransactionTxid prints the id of a body or signed transaction; the body
// is used when both are given.
func (c Compiler) TransactionTxid(opts domain.ViewOptions) ports.Command {
	return c.cmd(words("transaction", "txid"), viewArgs(opts))
}

// TransactionView pretty-prints a body or signed transaction.
func (c Compiler) TransactionView(opts domain.ViewOptions) ports.Command {
	return c.cmd(words("transaction", "view"), viewArgs(opts))
}

// TransactionCalculateMinFee estimates the fee of a body.
func (c Compiler) TransactionCalculateMinFee(opts domain.MinFeeOptions, paramsFile string) ports.Command {
	return c.cmd(words("transaction", "calculate-min-fee"),
		flag("--tx-body-file", opts.TxBody),
		words("--tx-in-count", strconv.Itoa(len(opts.TxIn))),
		words("--tx-out-count", strconv.Itoa(len(opts.TxOut))),
		c.Network.Args(),
		words("--witness-count", strconv.Itoa(opts.WitnessCount)),
		flag("--protocol-params-file", paramsFile))
}

// TransactionCalculateMinValue computes the minimum lovelace of an output
// value, without an address.
func (c Compiler) TransactionCalculateMinValue(value domain.Value, paramsFile string) ports.Command {
	return c.cmd(words("transaction", "calculate-min-required-utxo"),
		flag("--tx-out", serialize.MultiAsset(value)),
		flag("--protocol-params-file", paramsFile))
}

// TransactionCalculateMinRequiredUtxo computes the minimum lovelace of a
// full output.
func (c Compiler) TransactionCalculateMinRequiredUtxo(address string, value domain.Value, paramsFile string) ports.Command {
	return c.cmd(words("transaction", "calculate-min-required-utxo"),
		c.eraOrFallback(),
		flag("--tx-out", address+"+"+serialize.MultiAsset(value)),
		flag("--protocol-params-file", paramsFile))
}

// TransactionPolicyid hashes a minting script file.
func (c Compiler) TransactionPolicyid(scriptFile string) ports.Command {
	return c.cmd(words("transaction", "policyid"), flag("--script-file", scriptFile))
}

// TransactionHashScriptData hashes an inline script data value.
func (c Compiler) TransactionHashScriptData(value string) ports.Command {
	return c.cmd(words("transaction", "hash-script-data"), flag("--script-data-value", value))
}
