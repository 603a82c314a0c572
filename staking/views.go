// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking/ledger"
	"github.com/degenscore/stakepool/staking/pool"
	"github.com/degenscore/stakepool/state"
)

//
// Getters - no state change
//

// Stake returns the entry of owner, a zero entry if owner never deposited.
func (s *Staker) Stake(owner degen.Address) (*ledger.Entry, error) {
	var entry *ledger.Entry
	err := s.store.View(func(st *state.State) error {
		var err error
		entry, err = ledger.New(st).Get(owner)
		return err
	})
	return entry, err
}

// Pool returns the pool aggregate.
func (s *Staker) Pool() (*pool.Aggregate, error) {
	var agg *pool.Aggregate
	err := s.store.View(func(st *state.State) error {
		var err error
		agg, err = pool.New(st).Get()
		return err
	})
	return agg, err
}

// PendingReward returns what Claim would pay owner now.
func (s *Staker) PendingReward(owner degen.Address) (uint64, error) {
	var amount uint64
	err := s.store.View(func(st *state.State) error {
		entry, err := ledger.New(st).Get(owner)
		if err != nil {
			return err
		}
		amount = addSaturating(entry.Unsettled, pending(entry, s.clock.Now()))
		return nil
	})
	return amount, err
}

// CheckInvariants verifies the pool totals against the ledger.
func (s *Staker) CheckInvariants() error {
	return s.store.View(func(st *state.State) error {
		agg, err := pool.New(st).Get()
		if err != nil {
			return err
		}

		var (
			sum, count uint64
			overflow   bool
		)
		err = ledger.New(st).Iterate(func(e *ledger.Entry) bool {
			if e.IsEmpty() {
				return true
			}
			var carry uint64
			sum, carry = bits.Add64(sum, e.Amount, 0)
			overflow = overflow || carry != 0
			count++
			return true
		})
		if err != nil {
			return err
		}
		if overflow || sum != agg.TotalStaked {
			return errors.Errorf("total staked %d, ledger sum %d", agg.TotalStaked, sum)
		}
		if count != agg.TotalParticipants {
			return errors.Errorf("participants %d, active entries %d", agg.TotalParticipants, count)
		}
		return nil
	})
}
