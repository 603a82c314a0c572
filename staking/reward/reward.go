// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"
)

const (
	// SecondsPerYear is the accrual year, leap days ignored.
	SecondsPerYear = 365 * 86400
	// BasisPoints is 100% in basis points.
	BasisPoints = 10000
)

var (
	bigBasisPoints    = uint256.NewInt(BasisPoints)
	bigSecondsPerYear = uint256.NewInt(SecondsPerYear)
)

// Accrue returns the yield earned by principal at rateBP over elapsed seconds.
//
//	annual = principal * rateBP / 10000
//	reward = annual * elapsed / SecondsPerYear
//
// Both divisions floor. Products are computed on 256 bits so they never wrap;
// a result that does not fit 64 bits saturates at MaxUint64.
func Accrue(principal uint64, rateBP uint16, elapsed int64) uint64 {
	if principal == 0 || rateBP == 0 || elapsed <= 0 {
		return 0
	}

	annual := new(uint256.Int).Mul(uint256.NewInt(principal), uint256.NewInt(uint64(rateBP)))
	annual.Div(annual, bigBasisPoints)

	reward := annual.Mul(annual, uint256.NewInt(uint64(elapsed)))
	reward.Div(reward, bigSecondsPerYear)

	if !reward.IsUint64() {
		return ^uint64(0)
	}
	return reward.Uint64()
}
