// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/staking/ledger"
	"github.com/degenscore/stakepool/staking/pool"
	"github.com/degenscore/stakepool/staking/reverts"
	"github.com/degenscore/stakepool/staking/reward"
	"github.com/degenscore/stakepool/staking/tier"
	"github.com/degenscore/stakepool/state"
)

// PenaltyPercent is the share of principal withheld on early withdrawal.
const PenaltyPercent = 20

var logger = log.WithContext("pkg", "staking")

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Transferer moves value between two balances, failing if the source
// balance is insufficient.
type Transferer interface {
	Transfer(from, to degen.Address, amount uint64) error
}

// Bank binds a Transferer to the working state of one operation, so the
// transfer commits or reverts together with the ledger.
type Bank func(st *state.State) Transferer

// Clock returns the current time in seconds. It never goes backwards.
type Clock interface {
	Now() int64
}

// Staker runs deposit, claim and withdraw against the stake ledger and the pool aggregate.
// Every operation is one atomic unit of the state store, which also
// serializes them.
type Staker struct {
	store      *state.Store
	bank       Bank
	clock      Clock
	thresholds tier.Thresholds
	sink       EventSink
}

// New create a new instance.
func New(store *state.Store, bank Bank, clock Clock) *Staker {
	return &Staker{
		store:      store,
		bank:       bank,
		clock:      clock,
		thresholds: tier.DefaultThresholds,
	}
}

// SetThresholds overrides the tier thresholds, for tokens whose decimals
// differ from degen.Decimals.
func (s *Staker) SetThresholds(th tier.Thresholds) {
	s.thresholds = th
}

// SetEventSink sets the receiver of committed events.
func (s *Staker) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Deposit moves amount from owner into custody and (re)locks the whole
// principal for lockSeconds at that period's rate.
func (s *Staker) Deposit(owner degen.Address, amount uint64, lockSeconds int64) error {
	logger.Debug("deposit", "owner", owner, "amount", amount, "lockSeconds", lockSeconds)

	if amount == 0 {
		return s.fail(OpDeposit, owner, reverts.New(reverts.InvalidAmount, "zero amount"))
	}
	period, err := reward.ParseLockPeriod(lockSeconds)
	if err != nil {
		return s.fail(OpDeposit, owner, err)
	}

	var ev *Event
	var agg *pool.Aggregate
	err = s.store.Atomic(func(st *state.State) error {
		now := s.clock.Now()
		pools := pool.New(st)
		stakes := ledger.New(st)

		var err error
		if agg, err = pools.Get(); err != nil {
			return err
		}
		if err := checkOwner(agg, owner); err != nil {
			return err
		}
		entry, err := stakes.Get(owner)
		if err != nil {
			return err
		}

		if err := s.bank(st).Transfer(owner, agg.Custody, amount); err != nil {
			return reverts.Wrap(reverts.TransferFailed, err)
		}

		newParticipant := entry.IsEmpty()
		if newParticipant {
			entry.StartTime = now
		} else if now > entry.LastClaim {
			// price the elapsed interval at the rate being replaced
			owed := entry.Tier.Apply(reward.Accrue(entry.Amount, entry.RateBP, now-entry.LastClaim))
			entry.Unsettled = addSaturating(entry.Unsettled, owed)
		}

		total, carry := bits.Add64(entry.Amount, amount, 0)
		if carry != 0 {
			return errors.New("stake amount overflow")
		}
		entry.Initialized = true
		entry.Amount = total
		entry.LockDuration = period
		entry.LockUntil = now + period.Seconds()
		if now > entry.LastClaim {
			entry.LastClaim = now
		}
		entry.RateBP = period.RateBP()
		entry.Tier = tier.ClassifyWith(s.thresholds, total)

		if agg, err = pools.ApplyDeposit(amount, newParticipant); err != nil {
			return err
		}
		if err := stakes.Set(entry); err != nil {
			return err
		}

		ev = &Event{
			Kind:        OpDeposit,
			Owner:       owner,
			Amount:      amount,
			LockSeconds: period.Seconds(),
			Tier:        entry.Tier,
			Time:        now,
		}
		st.OnCommit(func() { s.done(ev, agg) })
		return nil
	})
	if err != nil {
		return s.fail(OpDeposit, owner, err)
	}

	metricDepositLock().Observe(period.Days())
	logger.Info("deposited", "owner", owner, "amount", amount, "lock", period, "tier", ev.Tier)
	return nil
}

// Claim pays the yield accrued since the last settlement from the reward reserve.
func (s *Staker) Claim(owner degen.Address) (uint64, error) {
	logger.Debug("claim", "owner", owner)

	var ev *Event
	var agg *pool.Aggregate
	err := s.store.Atomic(func(st *state.State) error {
		now := s.clock.Now()
		stakes := ledger.New(st)

		var err error
		if agg, err = pool.New(st).Get(); err != nil {
			return err
		}
		if err := checkOwner(agg, owner); err != nil {
			return err
		}
		entry, err := stakes.Get(owner)
		if err != nil {
			return err
		}
		if !entry.Initialized {
			return reverts.New(reverts.NothingStaked, "no stake entry")
		}
		if now <= entry.LastClaim {
			return reverts.New(reverts.NoYieldToClaim, "")
		}

		payout := addSaturating(entry.Unsettled, pending(entry, now))
		if err := s.bank(st).Transfer(agg.RewardReserve, owner, payout); err != nil {
			return reverts.Wrap(reverts.TransferFailed, err)
		}

		entry.LastClaim = now
		entry.TotalClaimed = addSaturating(entry.TotalClaimed, payout)
		entry.Unsettled = 0
		if err := stakes.Set(entry); err != nil {
			return err
		}

		ev = &Event{
			Kind:   OpClaim,
			Owner:  owner,
			Amount: entry.Amount,
			Payout: payout,
			Tier:   entry.Tier,
			Time:   now,
		}
		st.OnCommit(func() { s.done(ev, agg) })
		return nil
	})
	if err != nil {
		return 0, s.fail(OpClaim, owner, err)
	}

	logger.Info("claimed", "owner", owner, "payout", ev.Payout, "multiplier", ev.Tier.Multiplier())
	return ev.Payout, nil
}

// Withdraw returns the whole principal to owner, less the penalty when
// still locked, and empties the entry.
func (s *Staker) Withdraw(owner degen.Address) (uint64, uint64, error) {
	logger.Debug("withdraw", "owner", owner)

	var ev *Event
	var agg *pool.Aggregate
	err := s.store.Atomic(func(st *state.State) error {
		now := s.clock.Now()
		pools := pool.New(st)
		stakes := ledger.New(st)

		var err error
		if agg, err = pools.Get(); err != nil {
			return err
		}
		if err := checkOwner(agg, owner); err != nil {
			return err
		}
		entry, err := stakes.Get(owner)
		if err != nil {
			return err
		}
		if entry.IsEmpty() {
			return reverts.New(reverts.NothingStaked, "")
		}

		amount := entry.Amount
		var penalty uint64
		if entry.Locked(now) {
			penalty = Penalty(amount)
		}
		payout := amount - penalty

		if err := s.bank(st).Transfer(agg.Custody, owner, payout); err != nil {
			return reverts.Wrap(reverts.TransferFailed, err)
		}

		if agg, err = pools.ApplyWithdraw(amount, penalty); err != nil {
			return err
		}
		entry.Reset()
		if err := stakes.Set(entry); err != nil {
			return err
		}

		ev = &Event{
			Kind:        OpWithdraw,
			Owner:       owner,
			Amount:      amount,
			Payout:      payout,
			Penalty:     penalty,
			LockSeconds: entry.LockDuration.Seconds(),
			Tier:        tier.ClassifyWith(s.thresholds, amount),
			Time:        now,
		}
		st.OnCommit(func() { s.done(ev, agg) })
		return nil
	})
	if err != nil {
		return 0, 0, s.fail(OpWithdraw, owner, err)
	}

	logger.Info("withdrew", "owner", owner, "payout", ev.Payout, "penalty", ev.Penalty)
	return ev.Payout, ev.Penalty, nil
}

// Penalty returns floor(amount * PenaltyPercent / 100).
func Penalty(amount uint64) uint64 {
	hi, lo := bits.Mul64(amount, PenaltyPercent)
	q, _ := bits.Div64(hi, lo, 100)
	return q
}

// checkOwner rejects the pool's own accounts as stake owners. Their
// transfers would move value from an account to itself.
func checkOwner(agg *pool.Aggregate, owner degen.Address) error {
	if owner == agg.Custody || owner == agg.RewardReserve {
		return reverts.New(reverts.ReservedAccount, owner.String())
	}
	return nil
}

// pending is the freshly accrued, tier multiplied yield at now.
func pending(e *ledger.Entry, now int64) uint64 {
	if now <= e.LastClaim {
		return 0
	}
	return e.Tier.Apply(reward.Accrue(e.Amount, e.RateBP, now-e.LastClaim))
}

func addSaturating(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

func (s *Staker) fail(op Op, owner degen.Address, err error) error {
	metricOperationCount().AddWithLabel(1, map[string]string{"op": string(op), "result": resultLabel(err)})
	logger.Info(string(op)+" failed", "owner", owner, "error", err)
	return err
}

// done publishes a committed operation. It runs as a commit hook, so sinks
// see events in commit order.
func (s *Staker) done(ev *Event, agg *pool.Aggregate) {
	metricOperationCount().AddWithLabel(1, map[string]string{"op": string(ev.Kind), "result": "ok"})
	updatePoolGauges(agg)

	if s.sink == nil {
		return
	}
	if err := s.sink.Write([]*Event{ev}); err != nil {
		logger.Warn("failed to write event", "kind", ev.Kind, "owner", ev.Owner, "error", err)
	}
}
