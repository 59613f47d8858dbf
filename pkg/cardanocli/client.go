package cardanocli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bft-labs/cardanocli/internal/adapters/fs"
	"github.com/bft-labs/cardanocli/internal/adapters/process"
	"github.com/bft-labs/cardanocli/internal/command"
	"github.com/bft-labs/cardanocli/internal/decode"
	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/genesis"
	"github.com/bft-labs/cardanocli/internal/metrics"
	"github.com/bft-labs/cardanocli/internal/ports"
	"github.com/bft-labs/cardanocli/internal/units"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// Client drives cardano-cli for one network, era and working directory.
// Use New to create one and Close to release its plugins.
type Client struct {
	cfg      Config
	network  domain.Network
	compiler command.Compiler
	invoker  ports.Invoker
	namer    ports.Namer
	logger   ports.Logger

	artifacts         *fs.ArtifactStore
	genesis           *genesis.Shelley
	params            *paramCache
	sessionParamsPath string

	plugins []Plugin
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New creates a Client. It creates Dir/tmp, loads the shelley genesis and
// initializes plugins; no cardano-cli call is made.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	network, err := cfg.network()
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.namer == nil {
		o.namer = fs.NewUUIDNamer(cfg.Dir)
	}
	if o.invoker == nil {
		o.invoker = process.New(
			process.WithSocketPath(cfg.SocketPath),
			process.WithLogger(o.logger),
		)
	}
	if o.metrics {
		o.invoker = metrics.Instrument(o.invoker, metrics.NewInvocations(o.registerer, network.String()))
	}

	artifacts, err := fs.NewArtifactStore(cfg.Dir, o.namer)
	if err != nil {
		return nil, err
	}
	shelley, err := genesis.Load(cfg.ShelleyGenesisPath, network.IsMainnet())
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		network: network,
		compiler: command.Compiler{
			CliPath: cfg.CliPath,
			Network: network,
			Era:     cfg.Era,
		},
		invoker:           o.invoker,
		namer:             o.namer,
		logger:            o.logger,
		artifacts:         artifacts,
		genesis:           shelley,
		params:            newParamCache(cfg.ProtocolParamsPath),
		sessionParamsPath: filepath.Join(artifacts.TmpDir(), paramsFileName),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	pluginCfg := PluginConfig{
		Dir:    cfg.Dir,
		TmpDir: artifacts.TmpDir(),
		Logger: o.logger,
		Cache:  c.params,
	}
	for _, p := range o.plugins {
		if err := p.Initialize(ctx, pluginCfg); err != nil {
			o.logger.Error("plugin initialization failed", log.String("plugin", p.Name()), log.Err(err))
			_ = c.shutdownPlugins(context.Background())
			cancel()
			return nil, fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		c.plugins = append(c.plugins, p)
		o.logger.Debug("plugin initialized", log.String("plugin", p.Name()))
	}

	o.logger.Info("cardano-cli client ready",
		log.String("network", network.String()),
		log.String("era", cfg.Era),
		log.String("dir", cfg.Dir))
	return c, nil
}

// Close shuts plugins down in reverse registration order. Operations on a
// closed client fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.shutdownPlugins(context.Background())
	c.cancel()
	return err
}

func (c *Client) shutdownPlugins(ctx context.Context) error {
	var errs []error
	for i := len(c.plugins) - 1; i >= 0; i-- {
		if err := c.plugins[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown plugin %s: %w", c.plugins[i].Name(), err))
		}
	}
	c.plugins = nil
	return errors.Join(errs...)
}

// Network returns the selector fixed at construction.
func (c *Client) Network() Network { return c.network }

// Dir returns the working directory root.
func (c *Client) Dir() string { return c.cfg.Dir }

// run invokes cmd. cardano-cli errors are returned unchanged.
func (c *Client) run(ctx context.Context, cmd ports.Command) (string, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return "", domain.ErrClosed
	}
	return c.invoker.Invoke(ctx, cmd)
}

// QueryTip returns the node's current tip. It is never cached.
func (c *Client) QueryTip(ctx context.Context) (Tip, error) {
	out, err := c.run(ctx, c.compiler.QueryTip())
	if err != nil {
		return Tip{}, err
	}
	return decode.Tip(out)
}

// QueryUtxo lists the unspent outputs at address. A malformed address is
// reported by cardano-cli.
func (c *Client) QueryUtxo(ctx context.Context, address string) ([]Utxo, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.Invalid("address", "address is required")
	}
	out, err := c.run(ctx, c.compiler.QueryUtxo(address))
	if err != nil {
		return nil, err
	}
	return decode.UtxoTable(out)
}

// AddressKeyGen generates a payment key pair under
// Dir/priv/wallet/<account>. Existing keys are never overwritten.
func (c *Client) AddressKeyGen(ctx context.Context, account string) (KeyPair, error) {
	if account == "" {
		return KeyPair{}, domain.Invalid("account", "account name is required")
	}
	dir := c.cfg.WalletDir(account)
	keys := KeyPair{
		VkeyFilePath: filepath.Join(dir, account+".payment.vkey"),
		SkeyFilePath: filepath.Join(dir, account+".payment.skey"),
	}
	for _, p := range []string{keys.VkeyFilePath, keys.SkeyFilePath} {
		if fs.Exists(p) {
			return KeyPair{}, domain.Invalid("account", p+" file already exists")
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return KeyPair{}, fmt.Errorf("create wallet dir: %w", err)
	}
	if _, err := c.run(ctx, c.compiler.AddressKeyGen(keys)); err != nil {
		return KeyPair{}, err
	}
	return keys, nil
}

// AddressBuild builds the payment address of account and returns the path
// of the written .addr file.
func (c *Client) AddressBuild(ctx context.Context, account string, opts AddressBuildOptions) (string, error) {
	if account == "" {
		return "", domain.Invalid("account", "account name is required")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	paymentScript, err := c.writeScript(opts.PaymentScript)
	if err != nil {
		return "", err
	}
	stakeScript, err := c.writeScript(opts.StakeScript)
	if err != nil {
		return "", err
	}
	dir := c.cfg.WalletDir(account)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create wallet dir: %w", err)
	}
	out := filepath.Join(dir, account+".payment.addr")
	cmd := c.compiler.AddressBuild(opts.PaymentVkey, opts.StakeVkey, paymentScript, stakeScript, out)
	if _, err := c.run(ctx, cmd); err != nil {
		return "", err
	}
	return out, nil
}

// AddressKeyHash returns the hash of account's payment verification key.
func (c *Client) AddressKeyHash(ctx context.Context, account string) (string, error) {
	if account == "" {
		return "", domain.Invalid("account", "account name is required")
	}
	vkey := filepath.Join(c.cfg.WalletDir(account), account+".payment.vkey")
	out, err := c.run(ctx, c.compiler.AddressKeyHash(vkey))
	if err != nil {
		return "", err
	}
	return decode.ID(out), nil
}

// AddressInfo describes address.
func (c *Client) AddressInfo(ctx context.Context, address string) (AddressInfo, error) {
	if strings.TrimSpace(address) == "" {
		return AddressInfo{}, domain.Invalid("address", "address is required")
	}
	out, err := c.run(ctx, c.compiler.AddressInfo(address))
	if err != nil {
		return AddressInfo{}, err
	}
	return decode.AddressInfo(out)
}

// AddressBuildScript returns the address of a script.
func (c *Client) AddressBuildScript(ctx context.Context, script json.RawMessage) (string, error) {
	path, err := c.writeScript(script)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", domain.Invalid("script", "script is required")
	}
	out, err := c.run(ctx, c.compiler.AddressBuildScript(path))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(decode.Collapse(out)), nil
}

// writeScript writes a script artifact; an empty script yields "".
func (c *Client) writeScript(script json.RawMessage) (string, error) {
	if len(script) == 0 {
		return "", nil
	}
	path, err := c.artifacts.WriteJSON("script", script)
	if err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	return path, nil
}

// ToLovelace converts ada to lovelace.
func (c *Client) ToLovelace(ada string) (string, error) {
	return units.ToLovelace(ada)
}

// ToAda converts lovelace to ada.
func (c *Client) ToAda(lovelace string) (string, error) {
	return units.ToAda(lovelace)
}

// ShelleyGenesis returns the genesis document in use.
func (c *Client) ShelleyGenesis() json.RawMessage {
	return c.genesis.Raw
}

// KESPeriod returns the current KES period, from the live tip and the
// genesis slotsPerKESPeriod.
func (c *Client) KESPeriod(ctx context.Context) (uint64, error) {
	tip, err := c.QueryTip(ctx)
	if err != nil {
		return 0, err
	}
	return c.genesis.KESPeriod(tip.Slot)
}
