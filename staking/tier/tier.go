// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import (
	"math/bits"

	"github.com/degenscore/stakepool/degen"
)

// Tier is the reward multiplier class of a principal. Tiers are ordered,
// a larger principal never maps to a lower tier.
type Tier uint8

const (
	None Tier = iota
	Tier1
	Tier2
)

// Thresholds holds the minimum principal of each tier.
type Thresholds struct {
	Tier1 uint64
	Tier2 uint64
}

// DefaultThresholds are 10,000 and 100,000 whole tokens.
var DefaultThresholds = Thresholds{
	Tier1: degen.Tokens(10_000),
	Tier2: degen.Tokens(100_000),
}

// Classify returns the tier of amount under DefaultThresholds.
func Classify(amount uint64) Tier {
	return ClassifyWith(DefaultThresholds, amount)
}

// ClassifyWith returns the tier of amount under th.
func ClassifyWith(th Thresholds, amount uint64) Tier {
	switch {
	case amount >= th.Tier2:
		return Tier2
	case amount >= th.Tier1:
		return Tier1
	default:
		return None
	}
}

// Multiplier returns the reward multiplier of the tier.
func (t Tier) Multiplier() uint64 {
	switch t {
	case Tier1:
		return 2
	case Tier2:
		return 5
	default:
		return 1
	}
}

// Apply multiplies base by the tier multiplier, saturating at MaxUint64.
func (t Tier) Apply(base uint64) uint64 {
	hi, lo := bits.Mul64(base, t.Multiplier())
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}

func (t Tier) String() string {
	switch t {
	case None:
		return "none"
	case Tier1:
		return "staker"
	case Tier2:
		return "whale"
	default:
		return "invalid"
	}
}
