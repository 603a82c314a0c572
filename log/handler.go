// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Format selects how a handler renders records.
type Format int

const (
	// FormatLogfmt is machine parseable key=value output, for files and collectors.
	FormatLogfmt Format = iota
	// FormatTerminal is colored, padded output for an interactive terminal.
	FormatTerminal
	// FormatJSON writes one JSON object per record.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "terminal"
	case FormatJSON:
		return "json"
	default:
		return "logfmt"
	}
}

// NewHandler returns a handler writing records at or above level to wr.
// level is read on every record, so it can be changed at runtime.
func NewHandler(wr io.Writer, level *slog.LevelVar, format Format) slog.Handler {
	switch format {
	case FormatTerminal:
		return newTerminalHandler(wr, level, true)
	case FormatJSON:
		return slog.NewJSONHandler(wr, &slog.HandlerOptions{
			ReplaceAttr: replaceJSON,
			Level:       level,
		})
	default:
		return slog.NewTextHandler(wr, &slog.HandlerOptions{
			ReplaceAttr: replaceLogfmt,
			Level:       level,
		})
	}
}

// terminalHandler formats records for a human reading a terminal:
//
//	INFO [10-19|20:58:45.120] deposited     pkg=staking owner=0x61..63 amount=10,000
type terminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	// widest value seen per key, to line up repeated fields
	fieldPadding map[string]int

	buf []byte
}

func newTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *terminalHandler {
	return &terminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	return &terminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(merged, attrs...),
		fieldPadding: make(map[string]int),
	}
}

func replaceLogfmt(_ []string, attr slog.Attr) slog.Attr {
	return replaceAttr(attr, true)
}

func replaceJSON(_ []string, attr slog.Attr) slog.Attr {
	return replaceAttr(attr, false)
}

// replaceAttr renames the time and level keys to t and lvl, and renders
// big integers and Stringers (addresses, tiers, lock periods) as text.
func replaceAttr(attr slog.Attr, logfmt bool) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.Any("lvl", LevelString(l))
		}
	}

	switch v := attr.Value.Any().(type) {
	case time.Time:
		if logfmt {
			attr = slog.String(attr.Key, v.Format(timeFormat))
		}
	case *big.Int:
		attr.Value = slog.StringValue(nilOr(v == nil, v))
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case fmt.Stringer:
		isNil := v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil())
		attr.Value = slog.StringValue(nilOr(isNil, v))
	}
	return attr
}

func nilOr(isNil bool, v fmt.Stringer) string {
	if isNil {
		return "<nil>"
	}
	return v.String()
}
