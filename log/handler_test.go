// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLevel(lvl slog.Level) *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(lvl)
	return v
}

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(newTerminalHandler(&buf, newLevel(LevelTrace), false))

	l.Info("stake deposited", "amount", uint64(1_000_000), "big", big.NewInt(42))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO ["), out)
	assert.Contains(t, out, "stake deposited")
	assert.Contains(t, out, "amount=1,000,000")
	assert.Contains(t, out, "big=42")
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := newLevel(FromLegacyLevel(3))
	l := NewLogger(newTerminalHandler(&buf, lvl, false))

	l.Debug("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	lvl.Set(LevelDebug)
	l.Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewHandler(&buf, newLevel(LevelTrace), FormatJSON))
	l.With("pkg", "staking").Info("claimed", "payout", uint256.NewInt(10))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "staking", rec["pkg"])
	assert.Equal(t, "10", rec["payout"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	l := WithContext("pkg", "test")

	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewHandler(&buf, newLevel(LevelTrace), FormatLogfmt)))
	defer SetDefault(prev)

	l.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "pkg=test")
	assert.Contains(t, buf.String(), "k=v")
}

func TestLogfmtHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewHandler(&buf, newLevel(LevelInfo), FormatLogfmt))
	l.Debug("hidden")
	l.Info("withdrawn", "penalty", big.NewInt(5), "owner", (*big.Int)(nil))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "lvl=info")
	assert.Contains(t, out, "msg=withdrawn")
	assert.Contains(t, out, "penalty=5")
	assert.Contains(t, out, "owner=<nil>")
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "logfmt", FormatLogfmt.String())
	assert.Equal(t, "terminal", FormatTerminal.String())
	assert.Equal(t, "json", FormatJSON.String())
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, "INFO ", LevelAlignedString(slog.LevelInfo))
}

func TestAppendUint64(t *testing.T) {
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "1,234,567", string(appendUint64(nil, 1234567, false)))
	assert.Equal(t, "-1,234,567", string(appendInt64(nil, -1234567)))
}
