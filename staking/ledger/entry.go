// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking/reward"
	"github.com/degenscore/stakepool/staking/tier"
)

// Entry is the stake record of one participant. It is created on the first
// deposit and never deleted, a full withdrawal only empties it.
type Entry struct {
	Owner        degen.Address
	Amount       uint64
	StartTime    int64             // first deposit since the entry was last empty
	LockDuration reward.LockPeriod // chosen at the latest deposit
	LockUntil    int64
	LastClaim    int64
	RateBP       uint16
	Tier         tier.Tier
	TotalClaimed uint64
	Unsettled    uint64 // yield priced at a replaced rate, paid by the next claim
	Initialized  bool   // created by a deposit
}

// IsEmpty returns whether the entry holds no principal.
func (e *Entry) IsEmpty() bool {
	return e.Amount == 0
}

// Locked returns whether withdrawing at now incurs the early exit penalty.
func (e *Entry) Locked(now int64) bool {
	return !e.IsEmpty() && now < e.LockUntil
}

// Reset empties the entry after a full withdrawal.
// StartTime and TotalClaimed are kept for a later re-entry.
func (e *Entry) Reset() {
	e.Amount = 0
	e.Tier = tier.None
	e.Unsettled = 0
}

// body is the persisted form of Entry. rlp has no signed integers, times
// keep their two's complement bits.
type body struct {
	Amount       uint64
	StartTime    uint64
	LockDuration uint64
	LockUntil    uint64
	LastClaim    uint64
	RateBP       uint16
	Tier         uint8
	TotalClaimed uint64
	Unsettled    uint64
	Initialized  bool
}

func toBody(e *Entry) *body {
	return &body{
		Amount:       e.Amount,
		StartTime:    uint64(e.StartTime),
		LockDuration: uint64(e.LockDuration.Seconds()),
		LockUntil:    uint64(e.LockUntil),
		LastClaim:    uint64(e.LastClaim),
		RateBP:       e.RateBP,
		Tier:         uint8(e.Tier),
		TotalClaimed: e.TotalClaimed,
		Unsettled:    e.Unsettled,
		Initialized:  e.Initialized,
	}
}

func (b *body) entry(owner degen.Address) *Entry {
	return &Entry{
		Owner:        owner,
		Amount:       b.Amount,
		StartTime:    int64(b.StartTime),
		LockDuration: reward.LockPeriod(b.LockDuration),
		LockUntil:    int64(b.LockUntil),
		LastClaim:    int64(b.LastClaim),
		RateBP:       b.RateBP,
		Tier:         tier.Tier(b.Tier),
		TotalClaimed: b.TotalClaimed,
		Unsettled:    b.Unsettled,
		Initialized:  b.Initialized,
	}
}
