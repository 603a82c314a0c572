// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking/tier"
)

// Op names a staking operation.
type Op string

const (
	OpDeposit  Op = "deposit"
	OpClaim    Op = "claim"
	OpWithdraw Op = "withdraw"
)

// Event records one committed operation.
type Event struct {
	Kind        Op
	Owner       degen.Address
	Amount      uint64 // deposited amount, or principal at claim/withdraw
	Payout      uint64
	Penalty     uint64
	LockSeconds int64
	Tier        tier.Tier
	Time        int64
}

// EventSink receives events after their operation committed.
type EventSink interface {
	Write(events []*Event) error
}

// Sinks fans events out to every sink, in order.
type Sinks []EventSink

func (s Sinks) Write(events []*Event) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Write(events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
