// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/genesis"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/lvldb"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

func TestInspect(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	store, err := state.NewStore(db, 16)
	require.NoError(t, err)

	gen := genesis.NewDevnet()
	_, err = gen.Apply(store)
	require.NoError(t, err)

	auditDB, err := auditdb.NewMem()
	require.NoError(t, err)
	defer auditDB.Close()

	clk := clock.NewManual(1_700_000_000)
	staker := staking.New(store, func(st *state.State) staking.Transferer { return token.New(st) }, clk)
	staker.SetThresholds(gen.Thresholds())
	staker.SetEventSink(auditDB)

	owner := gen.Allocations[0].Address
	require.NoError(t, staker.Deposit(owner, degen.Tokens(1_000), 2592000))
	_, _, err = staker.Withdraw(owner)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, inspect(&out, store, staker))
	assert.Contains(t, out.String(), "penalty reserve  200")
	assert.Contains(t, out.String(), "custody balance  200")
	assert.Contains(t, out.String(), "books balanced")

	records, err := auditDB.Filter(context.Background(), &auditdb.Filter{Order: auditdb.DESC})
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, printRecords(&out, records))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "withdraw")
	assert.Contains(t, string(lines[1]), "800")
	assert.Contains(t, string(lines[2]), "deposit")
}

func TestNewLogHandler(t *testing.T) {
	level := &slog.LevelVar{}
	level.Set(log.FromLegacyLevel(3))

	var buf bytes.Buffer
	l := log.NewLogger(newLogHandler(&buf, level, true))
	l.Info("hello", "k", 1)
	l.Debug("hidden")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	l = log.NewLogger(newLogHandler(&buf, level, false))
	l.Info("hello", "k", 1)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=1")
}
