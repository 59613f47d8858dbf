// Package command compiles cardano-cli invocations.
//
// Each method returns one ports.Command with arguments in the order
// cardano-cli's own parser expects; related flag/value pairs stay adjacent.
package command

import (
	"strconv"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
)

// DefaultValidityWindow is added to the tip slot when a transaction has no
// explicit upper validity bound.
const DefaultValidityWindow uint64 = 10000

// FallbackEra is the era flag of build-raw and calculate-min-required-utxo
// when no era is configured.
const FallbackEra = "babbage"

// Compiler holds the session settings shared by every command.
type Compiler struct {
	CliPath string
	Network domain.Network
	// Era is the bare era name ("babbage"); empty emits no era flag.
	Era string
}

// EraArgs returns --<era>-era, or nothing when no era is set.
func (c Compiler) EraArgs() []string {
	return eraArgs(c.Era)
}

func eraArgs(era string) []string {
	if era == "" {
		return nil
	}
	return []string{"--" + era + "-era"}
}

// eraOrFallback is used by the commands that always carried an era flag.
func (c Compiler) eraOrFallback() []string {
	if c.Era == "" {
		return eraArgs(FallbackEra)
	}
	return eraArgs(c.Era)
}

func (c Compiler) cmd(parts ...[]string) ports.Command {
	var args []string
	for _, p := range parts {
		args = append(args, p...)
	}
	return ports.Command{Binary: c.CliPath, Args: args}
}

func flag(name, value string) []string {
	if value == "" {
		return nil
	}
	return []string{name, value}
}

func words(w ...string) []string { return w }

// QueryTip: query tip <network> --cardano-mode.
func (c Compiler) QueryTip() ports.Command {
	return c.cmd(words("query", "tip"), c.Network.Args(), words("--cardano-mode"))
}

// QueryProtocolParameters writes the parameters to out.
func (c Compiler) QueryProtocolParameters(out string) ports.Command {
	return c.cmd(words("query", "protocol-parameters"), c.Network.Args(),
		words("--cardano-mode"), flag("--out-file", out))
}

// QueryUtxo lists the outputs at address.
func (c Compiler) QueryUtxo(address string) ports.Command {
	return c.cmd(words("query", "utxo"), c.Network.Args(),
		flag("--address", address), words("--cardano-mode"))
}

// AddressKeyGen generates a payment key pair.
func (c Compiler) AddressKeyGen(keys domain.KeyPair) ports.Command {
	return c.cmd(words("address", "key-gen"),
		flag("--verification-key-file", keys.VkeyFilePath),
		flag("--signing-key-file", keys.SkeyFilePath))
}

// AddressBuild builds an address from already-resolved credential files.
func (c Compiler) AddressBuild(paymentVkey, stakeVkey, paymentScript, stakeScript, out string) ports.Command {
	return c.cmd(words("address", "build"),
		flag("--payment-verification-key-file", paymentVkey),
		flag("--staking-verification-key-file", stakeVkey),
		flag("--payment-script-file", paymentScript),
		flag("--stake-script-file", stakeScript),
		flag("--out-file", out),
		c.Network.Args())
}

// AddressKeyHash hashes a payment verification key.
func (c Compiler) AddressKeyHash(vkey string) ports.Command {
	return c.cmd(words("address", "key-hash"), flag("--payment-verification-key-file", vkey))
}

// AddressInfo describes an address.
func (c Compiler) AddressInfo(address string) ports.Command {
	return c.cmd(words("address", "info"), flag("--address", address))
}

// AddressBuildScript builds a script address.
func (c Compiler) AddressBuildScript(scriptFile string) ports.Command {
	return c.cmd(words("address", "build-script"), flag("--script-file", scriptFile), c.Network.Args())
}

// Bounds is a resolved validity window and fee.
type Bounds struct {
	InvalidBefore uint64
	InvalidAfter  uint64
	Fee           uint64
}

// NeedsTip reports whether tx lacks an upper validity bound, so the tip
// must be queried before compiling.
func NeedsTip(tx *domain.Transaction) bool {
	return tx.InvalidAfter == nil
}

// ResolveBounds fills unset bounds: invalidAfter = tipSlot + 10000,
// invalidBefore = 0, fee = 0.
func ResolveBounds(tx *domain.Transaction, tipSlot uint64) Bounds {
	b := Bounds{InvalidAfter: tipSlot + DefaultValidityWindow}
	if tx.InvalidAfter != nil {
		b.InvalidAfter = *tx.InvalidAfter
	}
	if tx.InvalidBefore != nil {
		b.InvalidBefore = *tx.InvalidBefore
	}
	if tx.Fee != nil {
		b.Fee = *tx.Fee
	}
	return b
}

func (b Bounds) validityArgs() []string {
	return []string{
		"--invalid-hereafter", strconv.FormatUint(b.InvalidAfter, 10),
		"--invalid-before", strconv.FormatUint(b.InvalidBefore, 10),
	}
}

// BuildRawInput is everything build-raw needs besides the session settings.
type BuildRawInput struct {
	Fragments     []string
	ScriptInvalid bool
	Bounds        Bounds
	OutFile       string
	ParamsFile    string
}

// TransactionBuildRaw compiles an unbalanced build with an explicit fee.
// It never carries a change address.
func (c Compiler) TransactionBuildRaw(in BuildRawInput) ports.Command {
	return c.cmd(words("transaction", "build-raw"),
		c.eraOrFallback(),
		in.Fragments,
		boolFlag("--script-invalid", in.ScriptInvalid),
		in.Bounds.validityArgs(),
		words("--fee", strconv.FormatUint(in.Bounds.Fee, 10)),
		flag("--out-file", in.OutFile),
		flag("--protocol-params-file", in.ParamsFile))
}

// BuildInput is everything the balancing build needs.
type BuildInput struct {
	Fragments       []string
	ScriptInvalid   bool
	WitnessOverride int
	Bounds          Bounds
	OutFile         string
	ChangeAddress   string
	ParamsFile      string
}

// TransactionBuild compiles the balancing build. No fee flag is emitted;
// cardano-cli computes it.
func (c Compiler) TransactionBuild(in BuildInput) ports.Command {
	var witness []string
	if in.WitnessOverride > 0 {
		witness = []string{"--witness-override", strconv.Itoa(in.WitnessOverride)}
	}
	return c.cmd(words("transaction", "build"),
		c.EraArgs(),
		in.Fragments,
		boolFlag("--script-invalid", in.ScriptInvalid),
		witness,
		in.Bounds.validityArgs(),
		flag("--out-file", in.OutFile),
		flag("--change-address", in.ChangeAddress),
		c.Network.Args(),
		flag("--protocol-params-file", in.ParamsFile))
}

func boolFlag(name string, set bool) []string {
	if !set {
		return nil
	}
	return []string{name}
}
