package cardanocli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bft-labs/cardanocli/internal/command"
	"github.com/bft-labs/cardanocli/internal/decode"
	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/serialize"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// prepared is a validated, serialized descriptor with its bounds resolved.
type prepared struct {
	fragments []string
	bounds    command.Bounds
	params    string
	out       string
}

// prepare validates tx, writes its artifacts, makes sure protocol
// parameters are cached and queries the tip when the upper bound is unset.
func (c *Client) prepare(ctx context.Context, tx *Transaction) (prepared, error) {
	if err := tx.Validate(c.network); err != nil {
		return prepared{}, err
	}
	frags, err := serialize.Transaction(c.artifacts, tx)
	if err != nil {
		return prepared{}, fmt.Errorf("serialize transaction: %w", err)
	}
	params, err := c.ensureProtocolParams(ctx)
	if err != nil {
		return prepared{}, err
	}
	var slot uint64
	if command.NeedsTip(tx) {
		tip, err := c.QueryTip(ctx)
		if err != nil {
			return prepared{}, err
		}
		slot = tip.Slot
	}
	return prepared{
		fragments: frags.Args(),
		bounds:    command.ResolveBounds(tx, slot),
		params:    params,
		out:       c.namer.Name("tx", ".raw"),
	}, nil
}

// TransactionBuildRaw builds an unbalanced body with an explicit fee (0
// when unset) and returns the path of the written tx_*.raw file.
func (c *Client) TransactionBuildRaw(ctx context.Context, tx *Transaction) (string, error) {
	p, err := c.prepare(ctx, tx)
	if err != nil {
		return "", err
	}
	cmd := c.compiler.TransactionBuildRaw(command.BuildRawInput{
		Fragments:     p.fragments,
		ScriptInvalid: tx.ScriptInvalid,
		Bounds:        p.bounds,
		OutFile:       p.out,
		ParamsFile:    p.params,
	})
	if _, err := c.run(ctx, cmd); err != nil {
		return "", err
	}
	c.logger.Info("transaction body built", log.String("file", p.out), log.Uint64("fee", p.bounds.Fee))
	return p.out, nil
}

// TransactionBuild builds a balanced body; cardano-cli computes the fee and
// sends the remainder to tx.ChangeAddress.
func (c *Client) TransactionBuild(ctx context.Context, tx *Transaction) (string, error) {
	if tx != nil && tx.ChangeAddress == "" {
		return "", domain.Invalid("changeAddress", "change address is required for a balanced build")
	}
	p, err := c.prepare(ctx, tx)
	if err != nil {
		return "", err
	}
	cmd := c.compiler.TransactionBuild(command.BuildInput{
		Fragments:       p.fragments,
		ScriptInvalid:   tx.ScriptInvalid,
		WitnessOverride: tx.WitnessOverride,
		Bounds:          p.bounds,
		OutFile:         p.out,
		ChangeAddress:   tx.ChangeAddress,
		ParamsFile:      p.params,
	})
	if _, err := c.run(ctx, cmd); err != nil {
		return "", err
	}
	c.logger.Info("balanced transaction body built", log.String("file", p.out))
	return p.out, nil
}

// TransactionSign signs a body and returns the tx_*.signed path.
func (c *Client) TransactionSign(ctx context.Context, opts SignOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	out := c.namer.Name("tx", ".signed")
	if _, err := c.run(ctx, c.compiler.TransactionSign(opts, out)); err != nil {
		return "", err
	}
	return out, nil
}

// TransactionWitness creates a detached witness and returns the
// tx_*.witness path.
func (c *Client) TransactionWitness(ctx context.Context, opts WitnessOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	out := c.namer.Name("tx", ".witness")
	if _, err := c.run(ctx, c.compiler.TransactionWitness(opts, out)); err != nil {
		return "", err
	}
	return out, nil
}

// TransactionAssemble joins a body with its witnesses and returns the
// tx_*.signed path.
func (c *Client) TransactionAssemble(ctx context.Context, opts AssembleOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	out := c.namer.Name("tx", ".signed")
	if _, err := c.run(ctx, c.compiler.TransactionAssemble(opts, out)); err != nil {
		return "", err
	}
	return out, nil
}

// TransactionSubmit submits a signed transaction and returns its id. An
// in-memory envelope is written to a tx_*.signed file first. Submission is
// attempted exactly once.
func (c *Client) TransactionSubmit(ctx context.Context, opts SubmitOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	txFile := opts.TxFile
	if opts.Tx != nil {
		data, err := json.Marshal(opts.Tx)
		if err != nil {
			return "", fmt.Errorf("encode tx envelope: %w", err)
		}
		txFile = c.namer.Name("tx", ".signed")
		if err := c.artifacts.WriteFile(txFile, data); err != nil {
			return "", err
		}
	}
	if _, err := c.run(ctx, c.compiler.TransactionSubmit(txFile)); err != nil {
		return "", err
	}
	id, err := c.TransactionTxid(ctx, ViewOptions{TxFile: txFile})
	if err != nil {
		return "", err
	}
	c.logger.Info("transaction submitted", log.String("txid", id))
	return id, nil
}

// TransactionTxid returns the id of a body or signed transaction.
func (c *Client) TransactionTxid(ctx context.Context, opts ViewOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	out, err := c.run(ctx, c.compiler.TransactionTxid(opts))
	if err != nil {
		return "", err
	}
	return decode.ID(out), nil
}

// TransactionView returns the tool's human-readable rendering, unparsed.
func (c *Client) TransactionView(ctx context.Context, opts ViewOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return c.run(ctx, c.compiler.TransactionView(opts))
}

// TransactionCalculateMinFee refreshes the protocol parameters and returns
// the minimum fee in lovelace.
func (c *Client) TransactionCalculateMinFee(ctx context.Context, opts MinFeeOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	params, err := c.RefreshProtocolParams(ctx)
	if err != nil {
		return "", err
	}
	out, err := c.run(ctx, c.compiler.TransactionCalculateMinFee(opts, params))
	if err != nil {
		return "", err
	}
	return decode.Fee(out)
}

// TransactionCalculateMinValue refreshes the protocol parameters and
// returns the minimum lovelace an output carrying value must hold.
func (c *Client) TransactionCalculateMinValue(ctx context.Context, value Value) (string, error) {
	if err := value.Validate(); err != nil {
		return "", err
	}
	params, err := c.RefreshProtocolParams(ctx)
	if err != nil {
		return "", err
	}
	out, err := c.run(ctx, c.compiler.TransactionCalculateMinValue(value, params))
	if err != nil {
		return "", err
	}
	return decode.MinValue(out)
}

// TransactionCalculateMinRequiredUtxo is TransactionCalculateMinValue for
// a full output, address included.
func (c *Client) TransactionCalculateMinRequiredUtxo(ctx context.Context, address string, value Value) (string, error) {
	if err := domain.ValidateAddress("address", address, c.network); err != nil {
		return "", err
	}
	if err := value.Validate(); err != nil {
		return "", err
	}
	params, err := c.RefreshProtocolParams(ctx)
	if err != nil {
		return "", err
	}
	out, err := c.run(ctx, c.compiler.TransactionCalculateMinRequiredUtxo(address, value, params))
	if err != nil {
		return "", err
	}
	return decode.MinValue(out)
}

// TransactionPolicyid returns the policy id of a minting script.
func (c *Client) TransactionPolicyid(ctx context.Context, script json.RawMessage) (string, error) {
	path, err := c.writeScript(script)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", domain.Invalid("script", "script is required")
	}
	out, err := c.run(ctx, c.compiler.TransactionPolicyid(path))
	if err != nil {
		return "", err
	}
	return decode.ID(out), nil
}

// TransactionHashScriptData returns the hash of a script data value.
func (c *Client) TransactionHashScriptData(ctx context.Context, data json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil || strings.TrimSpace(string(data)) == "" {
		return "", domain.Invalid("scriptData", "must be a JSON value")
	}
	out, err := c.run(ctx, c.compiler.TransactionHashScriptData(buf.String()))
	if err != nil {
		return "", err
	}
	return decode.ID(out), nil
}
