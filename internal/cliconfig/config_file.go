package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig is the TOML shape of Config.
type FileConfig struct {
	Network            string `toml:"network"`
	TestnetMagic       uint32 `toml:"testnet_magic"`
	Era                string `toml:"era"`
	Dir                string `toml:"dir"`
	CliPath            string `toml:"cli_path"`
	SocketPath         string `toml:"socket_path"`
	ShelleyGenesisPath string `toml:"shelley_genesis_path"`
	ProtocolParamsPath string `toml:"protocol_params_path"`
	WatchParams        *bool  `toml:"watch_params"`
	Metrics            *bool  `toml:"metrics"`
	LogLevel           string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.cardanocli/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cardanocli", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("network", fc.Network, &cfg.Network)
	s.setUint32("testnet-magic", fc.TestnetMagic, &cfg.TestnetMagic)
	s.setString("era", fc.Era, &cfg.Era)
	s.setString("dir", fc.Dir, &cfg.Dir)
	s.setString("cli-path", fc.CliPath, &cfg.CliPath)
	s.setString("socket-path", fc.SocketPath, &cfg.SocketPath)
	s.setString("shelley-genesis", fc.ShelleyGenesisPath, &cfg.ShelleyGenesisPath)
	s.setString("protocol-params", fc.ProtocolParamsPath, &cfg.ProtocolParamsPath)
	s.setBool("watch-params", fc.WatchParams, &cfg.WatchParams)
	s.setBool("metrics", fc.Metrics, &cfg.Metrics)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
