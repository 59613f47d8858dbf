package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "CARDANOCLI_"

// ApplyEnvConfig applies configuration from environment variables
// (CARDANOCLI_*). Explicitly set flags still win.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("network", env("NETWORK"), &cfg.Network)
	if err := s.setUint32FromString("testnet-magic", env("TESTNET_MAGIC"), &cfg.TestnetMagic); err != nil {
		return err
	}
	s.setString("era", env("ERA"), &cfg.Era)
	s.setString("dir", env("DIR"), &cfg.Dir)
	s.setString("cli-path", env("CLI_PATH"), &cfg.CliPath)
	s.setString("socket-path", env("SOCKET_PATH"), &cfg.SocketPath)
	s.setString("shelley-genesis", env("SHELLEY_GENESIS_PATH"), &cfg.ShelleyGenesisPath)
	s.setString("protocol-params", env("PROTOCOL_PARAMS_PATH"), &cfg.ProtocolParamsPath)
	s.setBoolFromString("watch-params", env("WATCH_PARAMS"), &cfg.WatchParams)
	s.setBoolFromString("metrics", env("METRICS"), &cfg.Metrics)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	return nil
}
