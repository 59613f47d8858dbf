package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
)

// Artifact kinds used in temp file names.
const (
	KindScript   = "script"
	KindMetadata = "metadata"
)

// scriptArgs renders the witness flags of one scripted item. prefix is the
// flag family: "tx-in", "mint", "withdrawal" or "certificate". The script
// flag of minting is named differently, hence scriptFlag.
func scriptArgs(w ports.ArtifactWriter, prefix, scriptFlag string, sw domain.ScriptWitness) ([]string, error) {
	var args []string
	if len(sw.Script) > 0 {
		path, err := w.WriteJSON(KindScript, sw.Script)
		if err != nil {
			return nil, fmt.Errorf("write %s script: %w", prefix, err)
		}
		args = append(args, scriptFlag, path)
	}
	if len(sw.Datum) > 0 {
		args = append(args, "--"+prefix+"-datum-value", compactJSON(sw.Datum))
	}
	if len(sw.Redeemer) > 0 {
		args = append(args, "--"+prefix+"-redeemer-value", compactJSON(sw.Redeemer))
	}
	if sw.ExecutionUnits != nil {
		args = append(args, "--"+prefix+"-execution-units", sw.ExecutionUnits.String())
	}
	return args, nil
}

// TxIn renders spending inputs, or collateral inputs when collateral is set.
// Collateral never carries script material.
func TxIn(w ports.ArtifactWriter, ins []domain.TxIn, collateral bool) ([]string, error) {
	var args []string
	for _, in := range ins {
		if collateral {
			args = append(args, "--tx-in-collateral", in.Ref())
			continue
		}
		args = append(args, "--tx-in", in.Ref())
		extra, err := scriptArgs(w, "tx-in", "--tx-in-script-file", in.ScriptWitness)
		if err != nil {
			return nil, err
		}
		args = append(args, extra...)
	}
	return args, nil
}

// TxOut renders outputs as --tx-out <address>+<value>, each followed by its
// datum flag.
func TxOut(outs []domain.TxOut) []string {
	var args []string
	for _, out := range outs {
		args = append(args, "--tx-out", out.Address+"+"+MultiAsset(out.Value))
		switch {
		case out.DatumHash != "":
			args = append(args, "--tx-out-datum-hash", out.DatumHash)
		case len(out.InlineDatum) > 0:
			args = append(args, "--tx-out-inline-datum-value", compactJSON(out.InlineDatum))
		}
	}
	return args
}

// Mint renders all mint and burn actions as a single --mint value, burned
// quantities negated, followed by each action's script flags.
func Mint(w ports.ArtifactWriter, mints []domain.Mint) ([]string, error) {
	if len(mints) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(mints))
	for _, m := range mints {
		qty := m.Quantity
		if m.Action == domain.ActionBurn {
			qty = "-" + strings.TrimPrefix(qty, "-")
		}
		parts = append(parts, qty+" "+m.Asset)
	}
	args := []string{"--mint", strings.Join(parts, "+")}
	for _, m := range mints {
		extra, err := scriptArgs(w, "mint", "--minting-script-file", m.ScriptWitness)
		if err != nil {
			return nil, err
		}
		args = append(args, extra...)
	}
	return args, nil
}

// Withdrawals renders --withdrawal <stake address>+<reward> per entry.
func Withdrawals(w ports.ArtifactWriter, ws []domain.Withdrawal) ([]string, error) {
	var args []string
	for _, wd := range ws {
		args = append(args, "--withdrawal", wd.StakingAddress+"+"+wd.Reward)
		extra, err := scriptArgs(w, "withdrawal", "--withdrawal-script-file", wd.ScriptWitness)
		if err != nil {
			return nil, err
		}
		args = append(args, extra...)
	}
	return args, nil
}

// Certificates renders --certificate-file per entry.
func Certificates(w ports.ArtifactWriter, certs []domain.Certificate) ([]string, error) {
	var args []string
	for _, c := range certs {
		args = append(args, "--certificate-file", c.Cert)
		extra, err := scriptArgs(w, "certificate", "--certificate-script-file", c.ScriptWitness)
		if err != nil {
			return nil, err
		}
		args = append(args, extra...)
	}
	return args, nil
}

// AuxScripts writes each auxiliary script and renders --auxiliary-script-file.
func AuxScripts(w ports.ArtifactWriter, scripts []json.RawMessage) ([]string, error) {
	var args []string
	for _, s := range scripts {
		path, err := w.WriteJSON(KindScript, s)
		if err != nil {
			return nil, fmt.Errorf("write auxiliary script: %w", err)
		}
		args = append(args, "--auxiliary-script-file", path)
	}
	return args, nil
}

// Metadata writes the metadata document and renders --metadata-json-file.
func Metadata(w ports.ArtifactWriter, metadata json.RawMessage) ([]string, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	path, err := w.WriteJSON(KindMetadata, metadata)
	if err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	return []string{"--metadata-json-file", path}, nil
}

// SigningKeys renders --signing-key-file per key.
func SigningKeys(keys []string) []string {
	return repeatFlag("--signing-key-file", keys)
}

// WitnessFiles renders --witness-file per file.
func WitnessFiles(files []string) []string {
	return repeatFlag("--witness-file", files)
}

func repeatFlag(flag string, values []string) []string {
	var args []string
	for _, v := range values {
		args = append(args, flag, v)
	}
	return args
}

// compactJSON strips insignificant whitespace so the value is one argument
// cardano-cli parses unchanged. Invalid JSON is passed through as-is for
// cardano-cli to reject.
func compactJSON(raw json.RawMessage) string {
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return string(raw)
	}
	return b.String()
}
