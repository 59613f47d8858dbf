package cardanocli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/cardanocli/internal/domain"
)

// DefaultCliPath is the binary looked up in PATH when none is configured.
const DefaultCliPath = "cardano-cli"

// Config holds the settings fixed for the lifetime of a Client.
type Config struct {
	// Network is "mainnet" (default) or "testnet".
	Network string
	// TestnetMagic is required when Network is not mainnet.
	TestnetMagic uint32
	// Era is the bare era name ("babbage", "conway"); it is passed as
	// --<era>-era. Empty emits no era flag.
	Era string
	// Dir is the working directory root; artifacts go to Dir/tmp and keys
	// to Dir/priv/wallet/<account>.
	Dir string
	// CliPath overrides the cardano-cli binary.
	CliPath string
	// SocketPath is exported to cardano-cli as CARDANO_NODE_SOCKET_PATH.
	SocketPath string
	// ShelleyGenesisPath replaces the bundled shelley genesis.
	ShelleyGenesisPath string
	// ProtocolParamsPath preloads the parameter cache with an existing file.
	ProtocolParamsPath string
}

// DefaultConfig returns a mainnet Config working in the current directory.
func DefaultConfig() Config {
	return Config{
		Network: "mainnet",
		Dir:     ".",
		CliPath: DefaultCliPath,
	}
}

// SetDefaults fills empty fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Network == "" {
		c.Network = "mainnet"
	}
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.CliPath == "" {
		c.CliPath = DefaultCliPath
	}
	c.Era = strings.TrimSuffix(strings.TrimPrefix(c.Era, "--"), "-era")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.network(); err != nil {
		return err
	}
	if strings.ContainsAny(c.Era, " \t") {
		return domain.Invalid("era", fmt.Sprintf("%q is not an era name", c.Era))
	}
	if c.Dir == "" {
		return domain.Invalid("dir", "working directory is required")
	}
	return nil
}

func (c *Config) network() (domain.Network, error) {
	return domain.ParseNetwork(c.Network, c.TestnetMagic)
}

// WalletDir returns Dir/priv/wallet/<account>.
func (c *Config) WalletDir(account string) string {
	return filepath.Join(c.Dir, "priv", "wallet", account)
}
