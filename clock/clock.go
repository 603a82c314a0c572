// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides time sources in unix seconds.
package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"

	"github.com/degenscore/stakepool/log"
)

// DefaultNTPServer is queried by CheckOffset when no server is given.
const DefaultNTPServer = "pool.ntp.org"

// MaxDrift is the local clock offset tolerated without a warning.
const MaxDrift = 30 * time.Second

var logger = log.WithContext("pkg", "clock")

// System reads the wall clock and never goes backwards: a reading older
// than the last one is replaced by the last one.
type System struct {
	mu   sync.Mutex
	last int64
}

func NewSystem() *System {
	return &System{}
}

// Now returns current unix time in seconds.
func (s *System) Now() int64 {
	now := time.Now().Unix()

	s.mu.Lock()
	defer s.mu.Unlock()
	if now < s.last {
		return s.last
	}
	s.last = now
	return now
}

// Manual is a clock moved by hand.
type Manual struct {
	mu  sync.Mutex
	now int64
}

func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by seconds. Negative values are ignored.
func (m *Manual) Advance(seconds int64) {
	if seconds <= 0 {
		return
	}
	m.mu.Lock()
	m.now += seconds
	m.mu.Unlock()
}

// Set moves the clock to t unless that would go backwards.
func (m *Manual) Set(t int64) {
	m.mu.Lock()
	if t > m.now {
		m.now = t
	}
	m.mu.Unlock()
}

// queryNTP is swapped in tests.
var queryNTP = ntp.Query

// CheckOffset queries an NTP server and warns if the local clock drifts
// more than MaxDrift. It returns the measured offset.
func CheckOffset(server string) (time.Duration, error) {
	if server == "" {
		server = DefaultNTPServer
	}
	resp, err := queryNTP(server)
	if err != nil {
		logger.Debug("failed to access NTP", "server", server, "err", err)
		return 0, err
	}
	offset := resp.ClockOffset
	if offset > MaxDrift || offset < -MaxDrift {
		logger.Warn("clock offset detected", "offset", offset.String(), "server", server)
	}
	return offset, nil
}
