package domain

import (
	"strconv"
)

// Network selects the chain cardano-cli talks to. It is immutable after
// construction; use Mainnet or Testnet.
type Network struct {
	mainnet bool
	magic   uint32
}

// Mainnet returns the mainnet selector.
func Mainnet() Network { return Network{mainnet: true} }

// Testnet returns a testnet selector for the given magic.
func Testnet(magic uint32) Network { return Network{magic: magic} }

// ParseNetwork builds a selector from a config name ("mainnet" or
// "testnet") and a magic number that is only read for testnets.
func ParseNetwork(name string, magic uint32) (Network, error) {
	switch name {
	case "", "mainnet":
		return Mainnet(), nil
	case "testnet", "preprod", "preview":
		if magic == 0 {
			return Network{}, Invalid("testnet-magic", "required when network is not mainnet")
		}
		return Testnet(magic), nil
	default:
		return Network{}, Invalid("network", "unknown network "+strconv.Quote(name))
	}
}

// IsMainnet reports whether the selector is mainnet.
func (n Network) IsMainnet() bool { return n.mainnet }

// Magic returns the testnet magic, or 0 on mainnet.
func (n Network) Magic() uint32 {
	if n.mainnet {
		return 0
	}
	return n.magic
}

// AddressNetworkID is the network id carried in address headers.
func (n Network) AddressNetworkID() uint {
	if n.mainnet {
		return 1
	}
	return 0
}

// Args returns the selector flag: --mainnet or --testnet-magic <n>.
func (n Network) Args() []string {
	if n.mainnet {
		return []string{"--mainnet"}
	}
	return []string{"--testnet-magic", strconv.FormatUint(uint64(n.magic), 10)}
}

func (n Network) String() string {
	if n.mainnet {
		return "mainnet"
	}
	return "testnet-" + strconv.FormatUint(uint64(n.magic), 10)
}
