// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	"github.com/degenscore/stakepool/metrics"
	"github.com/degenscore/stakepool/staking/pool"
	"github.com/degenscore/stakepool/staking/reverts"
)

var (
	metricOperationCount = metrics.LazyLoadCounterVec("staking_operation_count", []string{"op", "result"})
	metricTotalStaked    = metrics.LazyLoadGauge("staking_total_staked")
	metricParticipants   = metrics.LazyLoadGauge("staking_participants")
	metricPenaltyReserve = metrics.LazyLoadGauge("staking_penalty_reserve")
	metricDepositLock    = metrics.LazyLoadHistogram("staking_deposit_lock_days", metrics.BucketLockDays)
)

func updatePoolGauges(agg *pool.Aggregate) {
	if agg == nil {
		return
	}
	metricTotalStaked().Set(clampInt64(agg.TotalStaked))
	metricParticipants().Set(clampInt64(agg.TotalParticipants))
	metricPenaltyReserve().Set(clampInt64(agg.PenaltyReserve))
}

func resultLabel(err error) string {
	if kind := reverts.KindOf(err); kind != reverts.Unknown {
		return kind.String()
	}
	return "error"
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
