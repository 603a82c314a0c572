// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis bootstraps the token ledger and the stake pool.
package genesis

import (
	"math/bits"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/staking/pool"
	"github.com/degenscore/stakepool/staking/tier"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

var logger = log.WithContext("pkg", "genesis")

// maxDecimals keeps the whale threshold within 64 bits.
const maxDecimals = 10

// Genesis describes the initial ledger.
type Genesis struct {
	Authority     degen.Address `yaml:"authority"`
	RewardReserve degen.Address `yaml:"rewardReserve"`
	Custody       degen.Address `yaml:"custody"`
	Decimals      uint8         `yaml:"decimals"`
	MaxSupply     uint64        `yaml:"maxSupply"`     // in base units
	RewardFunding uint64        `yaml:"rewardFunding"` // minted to the reward reserve
	Allocations   []Allocation  `yaml:"allocations"`
}

// Allocation mints amount base units to an account.
type Allocation struct {
	Address degen.Address `yaml:"address"`
	Amount  uint64        `yaml:"amount"`
}

// Parse decodes and validates a yaml genesis.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// Load reads a yaml genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Validate checks the genesis is consistent.
func (g *Genesis) Validate() error {
	if g.Authority.IsZero() {
		return errors.New("authority must be set")
	}
	if g.RewardReserve.IsZero() || g.Custody.IsZero() {
		return errors.New("reward reserve and custody must be set")
	}
	if g.RewardReserve == g.Custody {
		return errors.New("reward reserve and custody must differ")
	}
	if g.Decimals > maxDecimals {
		return errors.Errorf("decimals must not exceed %d", maxDecimals)
	}

	total := g.RewardFunding
	for _, a := range g.Allocations {
		if a.Amount == 0 {
			return errors.Errorf("%v: amount must be a non-zero integer", a.Address)
		}
		var carry uint64
		if total, carry = bits.Add64(total, a.Amount, 0); carry != 0 {
			return errors.New("allocations overflow")
		}
	}
	if total > g.MaxSupply {
		return errors.Errorf("allocations %d exceed max supply %d", total, g.MaxSupply)
	}
	return nil
}

// Thresholds returns the tier thresholds scaled to the token decimals.
func (g *Genesis) Thresholds() tier.Thresholds {
	unit := pow10(g.Decimals)
	return tier.Thresholds{
		Tier1: 10_000 * unit,
		Tier2: 100_000 * unit,
	}
}

// Apply writes the genesis into store. A store whose pool is already
// initialized is left untouched and Apply returns false.
func (g *Genesis) Apply(store *state.Store) (bool, error) {
	applied := false
	err := store.Atomic(func(st *state.State) error {
		pools := pool.New(st)
		ok, err := pools.Initialized()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		tok := token.New(st)
		if err := tok.Initialize(g.Authority, g.Decimals, g.MaxSupply); err != nil {
			return errors.Wrap(err, "initialize token")
		}
		if err := pools.Initialize(g.Authority, g.RewardReserve, g.Custody); err != nil {
			return errors.Wrap(err, "initialize pool")
		}
		if g.RewardFunding > 0 {
			if err := tok.Mint(g.Authority, g.RewardReserve, g.RewardFunding); err != nil {
				return errors.Wrap(err, "fund reward reserve")
			}
		}
		for _, a := range g.Allocations {
			if err := tok.Mint(g.Authority, a.Address, a.Amount); err != nil {
				return errors.Wrapf(err, "allocate %v", a.Address)
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if applied {
		logger.Info("genesis applied", "allocations", len(g.Allocations), "rewardFunding", g.RewardFunding)
	}
	return applied, nil
}

func pow10(n uint8) uint64 {
	v := uint64(1)
	for range n {
		v *= 10
	}
	return v
}
