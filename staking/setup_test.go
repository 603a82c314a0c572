// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/lvldb"
	"github.com/degenscore/stakepool/staking/pool"
	"github.com/degenscore/stakepool/staking/tier"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

const genesisTime = int64(1_700_000_000)

var (
	authority = degen.BytesToAddress([]byte("authority"))
	reserve   = degen.BytesToAddress([]byte("reserve"))
	custody   = degen.BytesToAddress([]byte("custody"))
	alice     = degen.BytesToAddress([]byte("alice"))
	bob       = degen.BytesToAddress([]byte("bob"))
)

type testEnv struct {
	store  *state.Store
	clock  *clock.Manual
	staker *Staker
	events *recordingSink
}

func tokenBank(st *state.State) Transferer {
	return token.New(st)
}

// newTestEnv sets up a pool whose reserve holds reserveFunds, and mints
// the given balances.
func newTestEnv(t *testing.T, reserveFunds uint64, balances map[degen.Address]uint64) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := state.NewStore(db, 256)
	require.NoError(t, err)

	require.NoError(t, store.Atomic(func(st *state.State) error {
		tok := token.New(st)
		if err := tok.Initialize(authority, degen.Decimals, ^uint64(0)); err != nil {
			return err
		}
		if err := pool.New(st).Initialize(authority, reserve, custody); err != nil {
			return err
		}
		if reserveFunds > 0 {
			if err := tok.Mint(authority, reserve, reserveFunds); err != nil {
				return err
			}
		}
		for addr, bal := range balances {
			if err := tok.Mint(authority, addr, bal); err != nil {
				return err
			}
		}
		return nil
	}))

	env := &testEnv{
		store:  store,
		clock:  clock.NewManual(genesisTime),
		events: &recordingSink{},
	}
	env.staker = New(store, tokenBank, env.clock)
	env.staker.SetEventSink(env.events)
	return env
}

// rawUnits classifies as if the token had no decimals.
func (e *testEnv) rawUnits() *testEnv {
	e.staker.SetThresholds(tier.Thresholds{Tier1: 10_000, Tier2: 100_000})
	return e
}

func (e *testEnv) balance(t *testing.T, addr degen.Address) uint64 {
	var bal uint64
	require.NoError(t, e.store.View(func(st *state.State) error {
		var err error
		bal, err = token.New(st).BalanceOf(addr)
		return err
	}))
	return bal
}

// checkBooks asserts the pool totals match the ledger and custody holds
// every staked unit plus the penalty reserve.
func (e *testEnv) checkBooks(t *testing.T) {
	require.NoError(t, e.staker.CheckInvariants())
	agg, err := e.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, agg.TotalStaked+agg.PenaltyReserve, e.balance(t, custody))
}

type recordingSink struct {
	mu     sync.Mutex
	events []*Event
}

func (r *recordingSink) Write(events []*Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *recordingSink) kinds() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kinds []Op
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (r *recordingSink) owners() []degen.Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owners []degen.Address
	for _, ev := range r.events {
		owners = append(owners, ev.Owner)
	}
	return owners
}

// blockingSink holds the first event of owner until release is closed.
type blockingSink struct {
	recordingSink
	owner   degen.Address
	entered chan struct{}
	release chan struct{}
}

func newBlockingSink(owner degen.Address) *blockingSink {
	return &blockingSink{
		owner:   owner,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingSink) Write(events []*Event) error {
	for _, ev := range events {
		if ev.Owner == b.owner {
			close(b.entered)
			<-b.release
		}
	}
	return b.recordingSink.Write(events)
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{env: env}
}

func (ts *TestSequence) AddFunc(f TestFunc) *TestSequence {
	ts.funcs = append(ts.funcs, f)
	return ts
}

func (ts *TestSequence) Deposit(owner degen.Address, amount uint64, lockSeconds int64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		if err := ts.env.staker.Deposit(owner, amount, lockSeconds); err != nil {
			t.Fatalf("failed to deposit %d for %s: %v", amount, owner, err)
		}
	})
}

func (ts *TestSequence) Advance(seconds int64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		ts.env.clock.Advance(seconds)
	})
}

func (ts *TestSequence) Claim(owner degen.Address, expected uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		payout, err := ts.env.staker.Claim(owner)
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", owner, err)
		}
		assert.Equal(t, expected, payout, "claim payout of %s", owner)
	})
}

func (ts *TestSequence) Withdraw(owner degen.Address, expectedPayout, expectedPenalty uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		payout, penalty, err := ts.env.staker.Withdraw(owner)
		if err != nil {
			t.Fatalf("failed to withdraw for %s: %v", owner, err)
		}
		assert.Equal(t, expectedPayout, payout, "withdraw payout of %s", owner)
		assert.Equal(t, expectedPenalty, penalty, "withdraw penalty of %s", owner)
	})
}

func (ts *TestSequence) Run(t *testing.T) {
	for _, f := range ts.funcs {
		f(t)
	}
	ts.env.checkBooks(t)
}

type StakeAssertions struct {
	env   *testEnv
	owner degen.Address

	amount    *uint64
	tier      *tier.Tier
	rate      *uint16
	lockUntil *int64
	unsettled *uint64
	claimed   *uint64
}

func AssertStake(env *testEnv, owner degen.Address) *StakeAssertions {
	return &StakeAssertions{env: env, owner: owner}
}

func (sa *StakeAssertions) Amount(expected uint64) *StakeAssertions {
	sa.amount = &expected
	return sa
}

func (sa *StakeAssertions) Tier(expected tier.Tier) *StakeAssertions {
	sa.tier = &expected
	return sa
}

func (sa *StakeAssertions) Rate(expected uint16) *StakeAssertions {
	sa.rate = &expected
	return sa
}

func (sa *StakeAssertions) LockUntil(expected int64) *StakeAssertions {
	sa.lockUntil = &expected
	return sa
}

func (sa *StakeAssertions) Unsettled(expected uint64) *StakeAssertions {
	sa.unsettled = &expected
	return sa
}

func (sa *StakeAssertions) TotalClaimed(expected uint64) *StakeAssertions {
	sa.claimed = &expected
	return sa
}

func (sa *StakeAssertions) Assert(t *testing.T) {
	entry, err := sa.env.staker.Stake(sa.owner)
	require.NoError(t, err)

	if sa.amount != nil {
		assert.Equal(t, *sa.amount, entry.Amount, "amount of %s", sa.owner)
	}
	if sa.tier != nil {
		assert.Equal(t, *sa.tier, entry.Tier, "tier of %s", sa.owner)
	}
	if sa.rate != nil {
		assert.Equal(t, *sa.rate, entry.RateBP, "rate of %s", sa.owner)
	}
	if sa.lockUntil != nil {
		assert.Equal(t, *sa.lockUntil, entry.LockUntil, "lock until of %s", sa.owner)
	}
	if sa.unsettled != nil {
		assert.Equal(t, *sa.unsettled, entry.Unsettled, "unsettled of %s", sa.owner)
	}
	if sa.claimed != nil {
		assert.Equal(t, *sa.claimed, entry.TotalClaimed, "total claimed of %s", sa.owner)
	}
}
