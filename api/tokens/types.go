// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/degenscore/stakepool/degen"
)

type Supply struct {
	Supply    math.HexOrDecimal64 `json:"supply"`
	MaxSupply math.HexOrDecimal64 `json:"maxSupply"`
	Decimals  uint8               `json:"decimals"`
	Paused    bool                `json:"paused"`
}

type Balance struct {
	Address *degen.Address      `json:"address"`
	Balance math.HexOrDecimal64 `json:"balance"`
}
