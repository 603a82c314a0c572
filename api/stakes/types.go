// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking/ledger"
	"github.com/degenscore/stakepool/staking/pool"
)

type DepositRequest struct {
	Amount      math.HexOrDecimal64 `json:"amount"`
	LockSeconds int64               `json:"lockSeconds"`
}

type ClaimResult struct {
	Payout math.HexOrDecimal64 `json:"payout"`
}

type WithdrawResult struct {
	Payout  math.HexOrDecimal64 `json:"payout"`
	Penalty math.HexOrDecimal64 `json:"penalty"`
}

type Pending struct {
	Owner   *degen.Address      `json:"owner"`
	Pending math.HexOrDecimal64 `json:"pending"`
}

type Stake struct {
	Owner        *degen.Address      `json:"owner"`
	Amount       math.HexOrDecimal64 `json:"amount"`
	StartTime    int64               `json:"startTime"`
	LockSeconds  int64               `json:"lockSeconds"`
	LockUntil    int64               `json:"lockUntil"`
	LastClaim    int64               `json:"lastClaim"`
	RateBP       uint16              `json:"rateBp"`
	Tier         string              `json:"tier"`
	Multiplier   uint64              `json:"multiplier"`
	TotalClaimed math.HexOrDecimal64 `json:"totalClaimed"`
	Unsettled    math.HexOrDecimal64 `json:"unsettled"`
}

func convertStake(e *ledger.Entry) *Stake {
	owner := e.Owner
	return &Stake{
		Owner:        &owner,
		Amount:       math.HexOrDecimal64(e.Amount),
		StartTime:    e.StartTime,
		LockSeconds:  e.LockDuration.Seconds(),
		LockUntil:    e.LockUntil,
		LastClaim:    e.LastClaim,
		RateBP:       e.RateBP,
		Tier:         e.Tier.String(),
		Multiplier:   e.Tier.Multiplier(),
		TotalClaimed: math.HexOrDecimal64(e.TotalClaimed),
		Unsettled:    math.HexOrDecimal64(e.Unsettled),
	}
}

type Pool struct {
	Authority         *degen.Address      `json:"authority"`
	RewardReserve     *degen.Address      `json:"rewardReserve"`
	Custody           *degen.Address      `json:"custody"`
	TotalStaked       math.HexOrDecimal64 `json:"totalStaked"`
	TotalParticipants uint64              `json:"totalParticipants"`
	PenaltyReserve    math.HexOrDecimal64 `json:"penaltyReserve"`
}

func convertPool(agg *pool.Aggregate) *Pool {
	return &Pool{
		Authority:         &agg.Authority,
		RewardReserve:     &agg.RewardReserve,
		Custody:           &agg.Custody,
		TotalStaked:       math.HexOrDecimal64(agg.TotalStaked),
		TotalParticipants: agg.TotalParticipants,
		PenaltyReserve:    math.HexOrDecimal64(agg.PenaltyReserve),
	}
}
