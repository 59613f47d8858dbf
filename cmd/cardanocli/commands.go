package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/cardanocli/pkg/cardanocli"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

// readJSONFile returns the contents of path, which must hold a JSON document.
func readJSONFile(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: not a JSON document", path)
	}
	return data, nil
}

func (a *app) tipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tip",
		Short: "Query the node tip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tip, err := a.client.QueryTip(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tip)
		},
	}
}

func (a *app) protocolParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "protocol-parameters",
		Short: "Query the current protocol parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := a.client.QueryProtocolParameters(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), params)
		},
	}
}

func (a *app) utxoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "utxo <address>",
		Short: "List the unspent outputs at an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utxos, err := a.client.QueryUtxo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), utxos)
		},
	}
}

func readTransaction(path string) (*cardanocli.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tx cardanocli.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &tx, nil
}

func (a *app) buildRawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build-raw <descriptor.json>",
		Short: "Build an unbalanced transaction body with an explicit fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(args[0])
			if err != nil {
				return err
			}
			out, err := a.client.TransactionBuildRaw(cmd.Context(), tx)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <descriptor.json>",
		Short: "Build a balanced transaction body; the descriptor needs a changeAddress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(args[0])
			if err != nil {
				return err
			}
			out, err := a.client.TransactionBuild(cmd.Context(), tx)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) signCommand() *cobra.Command {
	var opts cardanocli.SignOptions
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.TransactionSign(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&opts.TxBody, "tx-body", "", "transaction body file")
	cmd.Flags().StringArrayVar(&opts.SigningKeys, "signing-key", nil, "signing key file (repeatable)")
	return cmd
}

func (a *app) witnessCommand() *cobra.Command {
	var opts cardanocli.WitnessOptions
	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Create a detached witness from a signing key or a script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.TransactionWitness(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&opts.TxBody, "tx-body", "", "transaction body file")
	cmd.Flags().StringVar(&opts.SigningKey, "signing-key", "", "signing key file")
	cmd.Flags().StringVar(&opts.ScriptFile, "script-file", "", "script file")
	return cmd
}

func (a *app) assembleCommand() *cobra.Command {
	var opts cardanocli.AssembleOptions
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a body and its witnesses into a signed transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.TransactionAssemble(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&opts.TxBody, "tx-body", "", "transaction body file")
	cmd.Flags().StringArrayVar(&opts.WitnessFiles, "witness-file", nil, "witness file (repeatable)")
	return cmd
}

func (a *app) submitCommand() *cobra.Command {
	var txFile string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a signed transaction once and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.client.TransactionSubmit(cmd.Context(), cardanocli.SubmitOptions{TxFile: txFile})
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), id)
		},
	}
	cmd.Flags().StringVar(&txFile, "tx-file", "", "signed transaction file")
	return cmd
}

func viewFlags(cmd *cobra.Command, opts *cardanocli.ViewOptions) {
	cmd.Flags().StringVar(&opts.TxBody, "tx-body", "", "transaction body file (preferred when both are set)")
	cmd.Flags().StringVar(&opts.TxFile, "tx-file", "", "signed transaction file")
}

func (a *app) txidCommand() *cobra.Command {
	var opts cardanocli.ViewOptions
	cmd := &cobra.Command{
		Use:   "txid",
		Short: "Print the id of a body or signed transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.client.TransactionTxid(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), id)
		},
	}
	viewFlags(cmd, &opts)
	return cmd
}

func (a *app) viewCommand() *cobra.Command {
	var opts cardanocli.ViewOptions
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print cardano-cli's rendering of a body or signed transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.TransactionView(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	viewFlags(cmd, &opts)
	return cmd
}

func (a *app) minFeeCommand() *cobra.Command {
	var (
		txBody                  string
		inCount, outCount, wits int
	)
	cmd := &cobra.Command{
		Use:   "min-fee",
		Short: "Calculate the minimum fee of a body with fresh protocol parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fee, err := a.client.TransactionCalculateMinFee(cmd.Context(), cardanocli.MinFeeOptions{
				TxBody:       txBody,
				TxIn:         make([]cardanocli.TxIn, inCount),
				TxOut:        make([]cardanocli.TxOut, outCount),
				WitnessCount: wits,
			})
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), fee)
		},
	}
	cmd.Flags().StringVar(&txBody, "tx-body", "", "transaction body file")
	cmd.Flags().IntVar(&inCount, "tx-in-count", 1, "number of inputs")
	cmd.Flags().IntVar(&outCount, "tx-out-count", 1, "number of outputs")
	cmd.Flags().IntVar(&wits, "witness-count", 1, "number of witnesses")
	return cmd
}

func (a *app) minValueCommand() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "min-value <value-json>",
		Short: `Calculate the minimum lovelace of an output, e.g. '{"lovelace":"0","<policy>.<name>":"1"}'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value cardanocli.Value
			if err := json.Unmarshal([]byte(args[0]), &value); err != nil {
				return fmt.Errorf("parse value: %w", err)
			}
			var (
				minValue string
				err error
			)
			if address != "" {
				minValue, err = a.client.TransactionCalculateMinRequiredUtxo(cmd.Context(), address, value)
			} else {
				minValue, err = a.client.TransactionCalculateMinValue(cmd.Context(), value)
			}
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), minValue)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "output address (uses calculate-min-required-utxo with the era flag)")
	return cmd
}

func (a *app) policyidCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policyid <script.json>",
		Short: "Print the policy id of a minting script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readJSONFile(args[0])
			if err != nil {
				return err
			}
			id, err := a.client.TransactionPolicyid(cmd.Context(), script)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), id)
		},
	}
}

func (a *app) hashScriptDataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-script-data <json>",
		Short: "Hash a script data value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := a.client.TransactionHashScriptData(cmd.Context(), json.RawMessage(args[0]))
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), hash)
		},
	}
}

func (a *app) kesPeriodCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kes-period",
		Short: "Print the current KES period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := a.client.KESPeriod(cmd.Context())
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), fmt.Sprint(period))
		},
	}
}

func (a *app) genesisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shelley-genesis",
		Short: "Print the shelley genesis in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(a.client.ShelleyGenesis())
			return err
		},
	}
}
