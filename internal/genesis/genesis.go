// Package genesis selects the shelley genesis document of a session: an
// external file when configured, else the bundled mainnet or testnet copy.
package genesis

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

var (
	//go:embed mainnet-shelley-genesis.json
	mainnetShelley []byte

	//go:embed testnet-shelley-genesis.json
	testnetShelley []byte
)

// Shelley holds the fields cardanocli reads; Raw keeps the full document.
type Shelley struct {
	Raw json.RawMessage `json:"-"`

	NetworkMagic      uint32  `json:"networkMagic"`
	NetworkID         string  `json:"networkId"`
	SystemStart       string  `json:"systemStart"`
	EpochLength       uint64  `json:"epochLength"`
	SlotLength        float64 `json:"slotLength"`
	SlotsPerKESPeriod uint64  `json:"slotsPerKESPeriod"`
	MaxKESEvolutions  uint64  `json:"maxKESEvolutions"`
	SecurityParam     uint64  `json:"securityParam"`
	ActiveSlotsCoeff  float64 `json:"activeSlotsCoeff"`
}

// Load returns the genesis at path, or the bundled one for the network.
func Load(path string, mainnet bool) (*Shelley, error) {
	data := testnetShelley
	if mainnet {
		data = mainnetShelley
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read shelley genesis: %w", err)
		}
		data = b
	}
	var g Shelley
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse shelley genesis: %w", err)
	}
	g.Raw = append(json.RawMessage(nil), data...)
	return &g, nil
}

// KESPeriod returns the KES period containing slot.
func (g *Shelley) KESPeriod(slot uint64) (uint64, error) {
	if g.SlotsPerKESPeriod == 0 {
		return 0, fmt.Errorf("genesis has no slotsPerKESPeriod")
	}
	return slot / g.SlotsPerKESPeriod, nil
}
