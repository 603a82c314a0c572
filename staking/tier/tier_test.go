// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/degenscore/stakepool/degen"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		amount uint64
		want   Tier
	}{
		{0, None},
		{degen.Tokens(10_000) - 1, None},
		{degen.Tokens(10_000), Tier1},
		{degen.Tokens(99_999), Tier1},
		{degen.Tokens(100_000), Tier2},
		{math.MaxUint64, Tier2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.amount), "amount %d", tt.amount)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	f := fuzz.New()
	for range 1000 {
		var a, b uint64
		f.Fuzz(&a)
		f.Fuzz(&b)
		// keep a good share of samples around the thresholds
		if a%2 == 0 {
			a %= degen.Tokens(200_000)
			b %= degen.Tokens(200_000)
		}
		if a > b {
			a, b = b, a
		}
		assert.LessOrEqual(t, Classify(a), Classify(b), "a=%d b=%d", a, b)
	}
}

func TestClassifyWith(t *testing.T) {
	th := Thresholds{Tier1: 10_000, Tier2: 100_000}
	assert.Equal(t, Tier1, ClassifyWith(th, 10_000))
	assert.Equal(t, Tier2, ClassifyWith(th, 150_000))
	assert.Equal(t, None, ClassifyWith(th, 9_999))
}

func TestMultiplier(t *testing.T) {
	assert.Equal(t, uint64(1), None.Multiplier())
	assert.Equal(t, uint64(2), Tier1.Multiplier())
	assert.Equal(t, uint64(5), Tier2.Multiplier())

	assert.Equal(t, uint64(10), Tier1.Apply(5))
	assert.Equal(t, uint64(math.MaxUint64), Tier2.Apply(math.MaxUint64/2))
	assert.Equal(t, "whale", Tier2.String())
}
