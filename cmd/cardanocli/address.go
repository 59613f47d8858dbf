package main

import (
	"github.com/spf13/cobra"

	"github.com/bft-labs/cardanocli/pkg/cardanocli"
)

func (a *app) addressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Payment keys and addresses",
	}

	keyGen := &cobra.Command{
		Use:   "key-gen <account>",
		Short: "Generate a payment key pair under <dir>/priv/wallet/<account>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := a.client.AddressKeyGen(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), keys)
		},
	}

	var (
		buildOpts                  cardanocli.AddressBuildOptions
		paymentScript, stakeScript string
	)
	build := &cobra.Command{
		Use:   "build <account>",
		Short: "Build the payment address of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := buildOpts
			if paymentScript != "" {
				script, err := readJSONFile(paymentScript)
				if err != nil {
					return err
				}
				opts.PaymentScript = script
			}
			if stakeScript != "" {
				script, err := readJSONFile(stakeScript)
				if err != nil {
					return err
				}
				opts.StakeScript = script
			}
			out, err := a.client.AddressBuild(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), out)
		},
	}
	build.Flags().StringVar(&buildOpts.PaymentVkey, "payment-vkey", "", "payment verification key file")
	build.Flags().StringVar(&buildOpts.StakeVkey, "stake-vkey", "", "stake verification key file")
	build.Flags().StringVar(&paymentScript, "payment-script", "", "payment script JSON file")
	build.Flags().StringVar(&stakeScript, "stake-script", "", "stake script JSON file")

	keyHash := &cobra.Command{
		Use:   "key-hash <account>",
		Short: "Print the hash of an account's payment verification key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := a.client.AddressKeyHash(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), hash)
		},
	}

	info := &cobra.Command{
		Use:   "info <address>",
		Short: "Describe an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.AddressInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}

	buildScript := &cobra.Command{
		Use:   "build-script <script.json>",
		Short: "Print the address of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readJSONFile(args[0])
			if err != nil {
				return err
			}
			addr, err := a.client.AddressBuildScript(cmd.Context(), script)
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), addr)
		},
	}

	cmd.AddCommand(keyGen, build, keyHash, info, buildScript)
	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between ada and lovelace",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "lovelace <ada>",
			Short: "Convert ada to lovelace",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := a.client.ToLovelace(args[0])
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), out)
			},
		},
		&cobra.Command{
			Use:   "ada <lovelace>",
			Short: "Convert lovelace to ada",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := a.client.ToAda(args[0])
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), out)
			},
		},
	)
	return cmd
}
