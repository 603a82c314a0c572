// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package degen

import (
	"strconv"
	"strings"
)

// Decimals is the number of fractional digits of the token.
const Decimals = 9

// Unit is one whole token expressed in base units.
const Unit uint64 = 1_000_000_000

// Tokens converts whole tokens to base units.
func Tokens(n uint64) uint64 {
	return n * Unit
}

// FormatTokens renders base units as a decimal token amount, e.g. 1.5 for 1_500_000_000.
func FormatTokens(v uint64) string {
	whole := strconv.FormatUint(v/Unit, 10)
	frac := v % Unit
	if frac == 0 {
		return whole
	}
	s := strconv.FormatUint(frac, 10)
	s = strings.Repeat("0", Decimals-len(s)) + s
	return whole + "." + strings.TrimRight(s, "0")
}
