// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/lvldb"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

var (
	authority = degen.BytesToAddress([]byte("authority"))
	alice     = degen.BytesToAddress([]byte("alice"))
	bob       = degen.BytesToAddress([]byte("bob"))
)

func setup(t *testing.T) *state.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := state.NewStore(db, 64)
	require.NoError(t, err)

	require.NoError(t, store.Atomic(func(st *state.State) error {
		return token.New(st).Initialize(authority, degen.Decimals, degen.Tokens(1_000))
	}))
	return store
}

func TestInitialize(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Atomic(func(st *state.State) error {
		l := token.New(st)
		assert.Equal(t, token.ErrAlreadyInitialized, l.Initialize(authority, 9, 1))

		cfg, err := l.Config()
		require.NoError(t, err)
		assert.Equal(t, authority, cfg.Authority)
		assert.Equal(t, uint8(9), cfg.Decimals)
		assert.Equal(t, degen.Tokens(1_000), cfg.MaxSupply)
		return nil
	}))
}

func TestMint(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Atomic(func(st *state.State) error {
		l := token.New(st)
		assert.Equal(t, token.ErrUnauthorized, l.Mint(alice, alice, 1))
		require.NoError(t, l.Mint(authority, alice, degen.Tokens(600)))
		assert.Equal(t, token.ErrExceedsMaxSupply, l.Mint(authority, bob, degen.Tokens(401)))
		require.NoError(t, l.Mint(authority, bob, degen.Tokens(400)))

		supply, err := l.Supply()
		require.NoError(t, err)
		assert.Equal(t, degen.Tokens(1_000), supply)

		bal, err := l.BalanceOf(alice)
		require.NoError(t, err)
		assert.Equal(t, degen.Tokens(600), bal)
		return nil
	}))
}

func TestTransfer(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Atomic(func(st *state.State) error {
		l := token.New(st)
		require.NoError(t, l.Mint(authority, alice, 100))

		require.NoError(t, l.Transfer(alice, bob, 30))
		err := l.Transfer(alice, bob, 71)
		assert.True(t, errors.Is(err, token.ErrInsufficientBalance))

		// zero and self transfers are valid no-ops
		assert.NoError(t, l.Transfer(bob, alice, 0))
		assert.NoError(t, l.Transfer(alice, alice, 70))

		a, _ := l.BalanceOf(alice)
		b, _ := l.BalanceOf(bob)
		assert.Equal(t, uint64(70), a)
		assert.Equal(t, uint64(30), b)

		require.NoError(t, l.Transfer(bob, alice, 30))
		holders := map[degen.Address]uint64{}
		require.NoError(t, l.Holders(func(addr degen.Address, bal uint64) bool {
			holders[addr] = bal
			return true
		}))
		assert.Equal(t, map[degen.Address]uint64{alice: 100}, holders)
		return nil
	}))
}

func TestPaused(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Atomic(func(st *state.State) error {
		l := token.New(st)
		require.NoError(t, l.Mint(authority, alice, 100))

		assert.Equal(t, token.ErrUnauthorized, l.SetPaused(alice, true))
		require.NoError(t, l.SetPaused(authority, true))
		assert.Equal(t, token.ErrPaused, l.Transfer(alice, bob, 1))
		assert.Equal(t, token.ErrPaused, l.Mint(authority, bob, 1))

		require.NoError(t, l.SetPaused(authority, false))
		assert.NoError(t, l.Transfer(alice, bob, 1))
		return nil
	}))
}

func TestNotInitialized(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	store, err := state.NewStore(db, 8)
	require.NoError(t, err)

	require.NoError(t, store.View(func(st *state.State) error {
		_, err := token.New(st).Supply()
		assert.Equal(t, token.ErrNotInitialized, err)
		return nil
	}))
}
