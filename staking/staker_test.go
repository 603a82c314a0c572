// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking/reverts"
	"github.com/degenscore/stakepool/staking/reward"
	"github.com/degenscore/stakepool/staking/tier"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

const day = int64(86400)

func TestClaimAfterOneDay(t *testing.T) {
	env := newTestEnv(t, 1_000_000, map[degen.Address]uint64{alice: 10_000}).rawUnits()

	NewSequence(env).
		Deposit(alice, 10_000, reward.Lock30Days.Seconds()).
		AddFunc(func(t *testing.T) {
			AssertStake(env, alice).
				Amount(10_000).
				Tier(tier.Tier1).
				Rate(2000).
				LockUntil(genesisTime + 30*day).
				Assert(t)
		}).
		Advance(day).
		Claim(alice, 10).
		Run(t)

	AssertStake(env, alice).TotalClaimed(10).Assert(t)
	assert.Equal(t, uint64(10), env.balance(t, alice))
	assert.Equal(t, uint64(1_000_000-10), env.balance(t, reserve))
}

func TestClaimWithDecimals(t *testing.T) {
	env := newTestEnv(t, degen.Tokens(1_000_000), map[degen.Address]uint64{alice: degen.Tokens(10_000)})

	NewSequence(env).
		Deposit(alice, degen.Tokens(10_000), reward.Lock30Days.Seconds()).
		Advance(day).
		// floor(2e12 * 86400 / 31536000) * 2
		Claim(alice, 10_958_904_108).
		Run(t)
}

func TestWhaleTier(t *testing.T) {
	env := newTestEnv(t, degen.Tokens(2_000_000), map[degen.Address]uint64{alice: degen.Tokens(150_000)})

	NewSequence(env).
		Deposit(alice, degen.Tokens(150_000), reward.Lock365Days.Seconds()).
		AddFunc(func(t *testing.T) {
			AssertStake(env, alice).Tier(tier.Tier2).Rate(15000).Assert(t)
		}).
		Advance(reward.SecondsPerYear).
		Claim(alice, degen.Tokens(1_125_000)).
		Run(t)
}

func TestEarlyWithdrawPenalty(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 1_000})

	NewSequence(env).
		Deposit(alice, 1_000, reward.Lock90Days.Seconds()).
		Advance(10 * day).
		Withdraw(alice, 800, 200).
		Run(t)

	agg, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), agg.PenaltyReserve)
	assert.Equal(t, uint64(0), agg.TotalStaked)
	assert.Equal(t, uint64(0), agg.TotalParticipants)
	assert.Equal(t, uint64(800), env.balance(t, alice))

	AssertStake(env, alice).Amount(0).Tier(tier.None).Assert(t)
}

func TestWithdrawAfterLock(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 1_000})

	NewSequence(env).
		Deposit(alice, 1_000, reward.Lock30Days.Seconds()).
		Advance(30 * day).
		Withdraw(alice, 1_000, 0).
		Run(t)
}

func TestReentryAfterWithdraw(t *testing.T) {
	env := newTestEnv(t, 1_000_000, map[degen.Address]uint64{alice: 20_000}).rawUnits()

	NewSequence(env).
		Deposit(alice, 10_000, reward.Lock30Days.Seconds()).
		Advance(day).
		Claim(alice, 10).
		Advance(40 * day).
		Withdraw(alice, 10_000, 0).
		Advance(day).
		Deposit(alice, 5_000, reward.Lock90Days.Seconds()).
		Run(t)

	entry, err := env.staker.Stake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), entry.Amount)
	assert.Equal(t, tier.None, entry.Tier)
	assert.Equal(t, genesisTime+42*day, entry.StartTime)
	assert.Equal(t, uint64(10), entry.TotalClaimed, "history survives re-entry")

	agg, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), agg.TotalParticipants)

	assert.Equal(t, []Op{OpDeposit, OpClaim, OpWithdraw, OpDeposit}, env.events.kinds())
}

func TestRedepositSettlesAtOldRate(t *testing.T) {
	env := newTestEnv(t, 1_000_000, map[degen.Address]uint64{alice: 20_000}).rawUnits()

	NewSequence(env).
		Deposit(alice, 10_000, reward.Lock30Days.Seconds()).
		Advance(day).
		Deposit(alice, 10_000, reward.Lock365Days.Seconds()).
		AddFunc(func(t *testing.T) {
			AssertStake(env, alice).
				Amount(20_000).
				Rate(15000).
				Unsettled(10).
				LockUntil(genesisTime + day + 365*day).
				Assert(t)
		}).
		Advance(day).
		AddFunc(func(t *testing.T) {
			pending, err := env.staker.PendingReward(alice)
			require.NoError(t, err)
			assert.Equal(t, uint64(174), pending)
		}).
		// 10 parked + floor(30000 * 86400 / 31536000) * 2
		Claim(alice, 174).
		Run(t)

	AssertStake(env, alice).Unsettled(0).TotalClaimed(174).Assert(t)
}

func TestZeroPayoutClaim(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 100})

	NewSequence(env).
		Deposit(alice, 100, reward.Lock30Days.Seconds()).
		Advance(60).
		Claim(alice, 0).
		Advance(31 * day).
		Withdraw(alice, 100, 0).
		Advance(day).
		Claim(alice, 0).
		Run(t)
}

func TestValidationFailures(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 100})
	s := env.staker

	err := s.Deposit(alice, 0, reward.Lock30Days.Seconds())
	assert.Equal(t, reverts.InvalidAmount, reverts.KindOf(err))

	err = s.Deposit(alice, 1, 31*day)
	assert.Equal(t, reverts.InvalidLockDuration, reverts.KindOf(err))

	_, _, err = s.Withdraw(alice)
	assert.Equal(t, reverts.NothingStaked, reverts.KindOf(err))

	_, err = s.Claim(alice)
	assert.Equal(t, reverts.NothingStaked, reverts.KindOf(err))

	require.NoError(t, s.Deposit(alice, 100, reward.Lock30Days.Seconds()))
	_, err = s.Claim(alice)
	assert.Equal(t, reverts.NoYieldToClaim, reverts.KindOf(err))

	assert.Equal(t, []Op{OpDeposit}, env.events.kinds())
}

func TestDepositTransferFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 100})

	err := env.staker.Deposit(alice, 101, reward.Lock30Days.Seconds())
	assert.Equal(t, reverts.TransferFailed, reverts.KindOf(err))
	assert.True(t, errors.Is(err, token.ErrInsufficientBalance))

	entry, err := env.staker.Stake(alice)
	require.NoError(t, err)
	assert.False(t, entry.Initialized)
	assert.True(t, entry.IsEmpty())

	agg, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), agg.TotalStaked)
	assert.Equal(t, uint64(0), agg.TotalParticipants)
	assert.Equal(t, uint64(100), env.balance(t, alice))
	assert.Empty(t, env.events.kinds())
	env.checkBooks(t)
}

func TestClaimTransferFailureKeepsLastClaim(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 10_000}).rawUnits()

	require.NoError(t, env.staker.Deposit(alice, 10_000, reward.Lock30Days.Seconds()))
	env.clock.Advance(day)

	_, err := env.staker.Claim(alice)
	assert.Equal(t, reverts.TransferFailed, reverts.KindOf(err))

	entry, err := env.staker.Stake(alice)
	require.NoError(t, err)
	assert.Equal(t, genesisTime, entry.LastClaim)
	assert.Equal(t, uint64(0), entry.TotalClaimed)

	pending, err := env.staker.PendingReward(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pending)

	// funding the reserve lets the same claim through
	require.NoError(t, env.store.Atomic(func(st *state.State) error {
		return token.New(st).Mint(authority, reserve, 10)
	}))
	payout, err := env.staker.Claim(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), payout)
}

func TestWithdrawTransferFailure(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 1_000})
	require.NoError(t, env.staker.Deposit(alice, 1_000, reward.Lock30Days.Seconds()))

	require.NoError(t, env.store.Atomic(func(st *state.State) error {
		return token.New(st).SetPaused(authority, true)
	}))
	_, _, err := env.staker.Withdraw(alice)
	assert.Equal(t, reverts.TransferFailed, reverts.KindOf(err))
	assert.True(t, errors.Is(err, token.ErrPaused))

	AssertStake(env, alice).Amount(1_000).Assert(t)
	agg, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), agg.TotalStaked)
	assert.Equal(t, uint64(0), agg.PenaltyReserve)
}

func TestDepositIncreasesTotals(t *testing.T) {
	f := fuzz.New().NilChance(0)
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 1 << 62, bob: 1 << 62})

	owners := []degen.Address{alice, bob}
	for i := range 200 {
		var amount uint32
		var pick uint8
		f.Fuzz(&amount)
		f.Fuzz(&pick)
		owner := owners[i%2]
		period := reward.LockPeriods[int(pick)%len(reward.LockPeriods)]
		if amount == 0 {
			amount = 1
		}

		before, err := env.staker.Pool()
		require.NoError(t, err)
		entryBefore, err := env.staker.Stake(owner)
		require.NoError(t, err)

		require.NoError(t, env.staker.Deposit(owner, uint64(amount), period.Seconds()))

		after, err := env.staker.Pool()
		require.NoError(t, err)
		entryAfter, err := env.staker.Stake(owner)
		require.NoError(t, err)

		assert.Equal(t, before.TotalStaked+uint64(amount), after.TotalStaked)
		assert.Equal(t, entryBefore.Amount+uint64(amount), entryAfter.Amount)
		assert.Equal(t, period.RateBP(), entryAfter.RateBP)
		assert.Equal(t, tier.Classify(entryAfter.Amount), entryAfter.Tier)

		env.clock.Advance(int64(pick))
	}
	env.checkBooks(t)
}

func TestPenalty(t *testing.T) {
	f := fuzz.New()
	for range 500 {
		var amount uint64
		f.Fuzz(&amount)
		amount >>= 5
		assert.Equal(t, amount*20/100, Penalty(amount))
	}
	assert.Equal(t, uint64(3689348814741910323), Penalty(^uint64(0)))
	assert.Equal(t, uint64(0), Penalty(4))
	assert.Equal(t, uint64(1), Penalty(5))
}

func TestConcurrentOperations(t *testing.T) {
	const n = 40
	balances := make(map[degen.Address]uint64, n)
	owners := make([]degen.Address, 0, n)
	for i := range n {
		owner := degen.BytesToAddress([]byte{0xee, byte(i)})
		owners = append(owners, owner)
		balances[owner] = 1_000
	}
	env := newTestEnv(t, 1_000_000, balances)

	var g errgroup.Group
	for i, owner := range owners {
		g.Go(func() error {
			for range 5 {
				if err := env.staker.Deposit(owner, 100, reward.Lock30Days.Seconds()); err != nil {
					return err
				}
			}
			if i%4 == 0 {
				_, _, err := env.staker.Withdraw(owner)
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	agg, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(30*500), agg.TotalStaked)
	assert.Equal(t, uint64(30), agg.TotalParticipants)
	assert.Equal(t, uint64(10*100), agg.PenaltyReserve)
	env.checkBooks(t)
}

func TestPoolAccountsCannotStake(t *testing.T) {
	env := newTestEnv(t, 1_000_000, map[degen.Address]uint64{alice: 1_000})
	s := env.staker

	require.NoError(t, s.Deposit(alice, 1_000, reward.Lock365Days.Seconds()))

	for _, owner := range []degen.Address{custody, reserve} {
		err := s.Deposit(owner, 1_000, reward.Lock365Days.Seconds())
		assert.Equal(t, reverts.ReservedAccount, reverts.KindOf(err), "deposit of %s", owner)

		_, err = s.Claim(owner)
		assert.Equal(t, reverts.ReservedAccount, reverts.KindOf(err), "claim of %s", owner)

		_, _, err = s.Withdraw(owner)
		assert.Equal(t, reverts.ReservedAccount, reverts.KindOf(err), "withdraw of %s", owner)
	}

	agg, err := s.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), agg.TotalStaked)
	assert.Equal(t, uint64(1), agg.TotalParticipants)
	assert.Equal(t, []Op{OpDeposit}, env.events.kinds())
	env.checkBooks(t)
}

func TestEventsFollowCommitOrder(t *testing.T) {
	env := newTestEnv(t, 0, map[degen.Address]uint64{alice: 100, bob: 100})
	sink := newBlockingSink(alice)
	env.staker.SetEventSink(sink)

	var g errgroup.Group
	g.Go(func() error {
		return env.staker.Deposit(alice, 100, reward.Lock30Days.Seconds())
	})
	<-sink.entered

	bobDone := make(chan error, 1)
	go func() {
		bobDone <- env.staker.Deposit(bob, 100, reward.Lock30Days.Seconds())
	}()

	// bob commits only after alice's event is delivered
	select {
	case err := <-bobDone:
		t.Fatalf("deposit of bob returned while alice's event was pending: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	require.NoError(t, g.Wait())
	require.NoError(t, <-bobDone)

	assert.Equal(t, []degen.Address{alice, bob}, sink.owners())
	env.checkBooks(t)
}

func TestClaimBeforeEpoch(t *testing.T) {
	env := newTestEnv(t, 1_000_000, map[degen.Address]uint64{alice: 10_000})
	env.clock = clock.NewManual(-10 * day)
	env.staker = New(env.store, tokenBank, env.clock)
	env.rawUnits()

	NewSequence(env).
		Deposit(alice, 10_000, reward.Lock30Days.Seconds()).
		Advance(day).
		Claim(alice, 10).
		Run(t)

	AssertStake(env, alice).
		LockUntil(-10*day + reward.Lock30Days.Seconds()).
		TotalClaimed(10).
		Assert(t)
}
