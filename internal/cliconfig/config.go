package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/cardanocli/pkg/cardanocli"
)

// Config holds CLI configuration for cardanocli.
type Config struct {
	Network      string
	TestnetMagic uint32
	Era          string

	Dir        string
	CliPath    string
	SocketPath string

	ShelleyGenesisPath string
	ProtocolParamsPath string

	WatchParams bool
	Metrics     bool
	LogLevel    string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Network:    "mainnet",
		Dir:        ".",
		CliPath:    cardanocli.DefaultCliPath,
		SocketPath: os.Getenv("CARDANO_NODE_SOCKET_PATH"),
		LogLevel:   "info",
	}
}

// Validate checks the configuration for errors and normalises values.
func (c *Config) Validate() error {
	c.Network = strings.ToLower(strings.TrimSpace(c.Network))
	if c.Network == "" {
		c.Network = "mainnet"
	}
	if c.Network != "mainnet" && c.TestnetMagic == 0 {
		return fmt.Errorf("testnet-magic is required for network %q", c.Network)
	}
	c.Era = strings.TrimSuffix(strings.TrimPrefix(c.Era, "--"), "-era")
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}
	if c.CliPath == "" {
		c.CliPath = cardanocli.DefaultCliPath
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	return nil
}

// Library converts the CLI configuration into the client configuration.
func (c Config) Library() cardanocli.Config {
	return cardanocli.Config{
		Network:            c.Network,
		TestnetMagic:       c.TestnetMagic,
		Era:                c.Era,
		Dir:                c.Dir,
		CliPath:            c.CliPath,
		SocketPath:         c.SocketPath,
		ShelleyGenesisPath: c.ShelleyGenesisPath,
		ProtocolParamsPath: c.ProtocolParamsPath,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setUint32 sets a uint32 value if positive and flag not changed.
func (s *configSetter) setUint32(flag string, value uint32, dst *uint32) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setUint32FromString parses a string to uint32 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setUint32FromString(flag, value string, dst *uint32) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if n == 0 {
		return nil
	}
	*dst = uint32(n)
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
