package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/cardanocli/internal/cliconfig"
	"github.com/bft-labs/cardanocli/pkg/cardanocli"
	"github.com/bft-labs/cardanocli/pkg/log"
	"github.com/bft-labs/cardanocli/plugins/paramwatch"
)

const longHelp = `
Build, sign and submit Cardano transactions through cardano-cli.

Every command compiles to one or more cardano-cli invocations. Generated
files (transaction bodies, witnesses, scripts, metadata) are written under
<dir>/tmp and never deleted. Structured results are printed as JSON.

Configuration is read from $HOME/.cardanocli/config.toml, then CARDANOCLI_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  cardanocli tip --socket-path /ipc/node.socket
  cardanocli --network preprod --testnet-magic 1 utxo addr_test1...
  cardanocli build-raw tx.json --era babbage
  cardanocli sign --tx-body tmp/tx_1.raw --signing-key pay.skey
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the client shared by every subcommand of one execution.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
	client  *cardanocli.Client
}

func main() {
	a := &app{cfg: cliconfig.DefaultConfig()}
	root := a.rootCommand()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, root); err != nil {
		a.logger.Error().Err(err).Msg("cardanocli")
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	a.logger = cliconfig.Logger(a.cfg.LogLevel)

	root := &cobra.Command{
		Use:           "cardanocli",
		Short:         "Build, sign and submit Cardano transactions through cardano-cli",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.cardanocli/config.toml)")
	f.StringVar(&a.cfg.Network, "network", a.cfg.Network, "mainnet, testnet, preprod or preview")
	f.Uint32Var(&a.cfg.TestnetMagic, "testnet-magic", a.cfg.TestnetMagic, "network magic (required unless mainnet)")
	f.StringVar(&a.cfg.Era, "era", a.cfg.Era, "era flag passed to build commands, e.g. babbage")
	f.StringVar(&a.cfg.Dir, "dir", a.cfg.Dir, "working directory for keys and temp artifacts")
	f.StringVar(&a.cfg.CliPath, "cli-path", a.cfg.CliPath, "cardano-cli binary")
	f.StringVar(&a.cfg.SocketPath, "socket-path", a.cfg.SocketPath, "node socket (CARDANO_NODE_SOCKET_PATH for the child process)")
	f.StringVar(&a.cfg.ShelleyGenesisPath, "shelley-genesis", a.cfg.ShelleyGenesisPath, "shelley genesis file (default: bundled)")
	f.StringVar(&a.cfg.ProtocolParamsPath, "protocol-params", a.cfg.ProtocolParamsPath, "existing protocol parameters file")
	f.BoolVar(&a.cfg.WatchParams, "watch-params", a.cfg.WatchParams, "invalidate cached protocol parameters when the file changes")
	f.BoolVar(&a.cfg.Metrics, "metrics", a.cfg.Metrics, "log cardano-cli invocation metrics on exit")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.tipCommand(),
		a.protocolParamsCommand(),
		a.utxoCommand(),
		a.buildRawCommand(),
		a.buildCommand(),
		a.signCommand(),
		a.witnessCommand(),
		a.assembleCommand(),
		a.submitCommand(),
		a.txidCommand(),
		a.viewCommand(),
		a.minFeeCommand(),
		a.minValueCommand(),
		a.policyidCommand(),
		a.hashScriptDataCommand(),
		a.addressCommand(),
		a.convertCommand(),
		a.kesPeriodCommand(),
		a.genesisCommand(),
	)
	return root
}

// open resolves the configuration (defaults < file < env < changed flags)
// and creates the client.
func (a *app) open(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(&a.cfg, fc, changed)
	}
	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = cliconfig.Logger(a.cfg.LogLevel)
	a.logger.Debug().Interface("config", a.cfg).Msg("configuration")

	opts := []cardanocli.Option{
		cardanocli.WithLogger(log.NewZerologAdapterWithLogger(a.logger)),
	}
	if a.cfg.WatchParams {
		opts = append(opts, paramwatch.WithParamWatch())
	}
	if a.cfg.Metrics {
		opts = append(opts, cardanocli.WithMetrics(prometheus.DefaultRegisterer))
	}

	client, err := cardanocli.New(a.cfg.Library(), opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = client
	return nil
}

// run executes root and closes the client whether or not the command
// failed. Cobra skips post-run hooks after a RunE error.
func (a *app) run(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func (a *app) close() error {
	if a.client == nil {
		return nil
	}
	if a.cfg.Metrics {
		a.logMetrics()
	}
	err := a.client.Close()
	a.client = nil
	return err
}

// logMetrics reports the cardano-cli invocation series gathered during
// this run.
func (a *app) logMetrics() {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		a.logger.Warn().Err(err).Msg("gather metrics")
		return
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "cardanocli_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			ev := a.logger.Info().Str("metric", mf.GetName())
			for _, l := range m.GetLabel() {
				ev = ev.Str(l.GetName(), l.GetValue())
			}
			if c := m.GetCounter(); c != nil {
				ev = ev.Float64("value", c.GetValue())
			}
			if h := m.GetHistogram(); h != nil {
				ev = ev.Uint64("count", h.GetSampleCount()).Float64("sum_seconds", h.GetSampleSum())
			}
			ev.Msg("metrics")
		}
	}
}
