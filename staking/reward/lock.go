// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"fmt"

	"github.com/degenscore/stakepool/staking/reverts"
)

const secondsPerDay = 86400

// LockPeriod is one of the fixed lock durations, in seconds.
type LockPeriod int64

const (
	Lock30Days  LockPeriod = 30 * secondsPerDay
	Lock90Days  LockPeriod = 90 * secondsPerDay
	Lock180Days LockPeriod = 180 * secondsPerDay
	Lock365Days LockPeriod = 365 * secondsPerDay
)

// LockPeriods lists the accepted periods, shortest first.
var LockPeriods = []LockPeriod{Lock30Days, Lock90Days, Lock180Days, Lock365Days}

// ParseLockPeriod validates a lock duration given in seconds.
func ParseLockPeriod(seconds int64) (LockPeriod, error) {
	switch p := LockPeriod(seconds); p {
	case Lock30Days, Lock90Days, Lock180Days, Lock365Days:
		return p, nil
	}
	return 0, reverts.New(reverts.InvalidLockDuration, fmt.Sprintf("%d seconds", seconds))
}

// Seconds returns the period length in seconds.
func (p LockPeriod) Seconds() int64 { return int64(p) }

// Days returns the period length in days.
func (p LockPeriod) Days() int64 { return int64(p) / secondsPerDay }

// RateBP returns the annual yield rate of the period in basis points,
// 0 for anything outside the table.
func (p LockPeriod) RateBP() uint16 {
	switch p {
	case Lock30Days:
		return 2000
	case Lock90Days:
		return 4000
	case Lock180Days:
		return 8000
	case Lock365Days:
		return 15000
	default:
		return 0
	}
}

func (p LockPeriod) String() string {
	return fmt.Sprintf("%dd", p.Days())
}
