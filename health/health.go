// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/staking"
)

var _ staking.EventSink = (*Health)(nil)

type LastOperation struct {
	Kind      staking.Op `json:"kind"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy       bool           `json:"healthy"`
	StoreError    string         `json:"storeError,omitempty"`
	ClockOffsetMs *int64         `json:"clockOffsetMs"`
	LastOperation *LastOperation `json:"lastOperation"`
}

// Health tracks the node status. The node is healthy while checkStore succeeds
// and the last measured clock offset stays within clock.MaxDrift.
type Health struct {
	lock        sync.RWMutex
	checkStore  func() error
	lastOp      staking.Op
	lastOpTime  time.Time
	clockOffset *time.Duration
}

func New(checkStore func() error) *Health {
	return &Health{checkStore: checkStore}
}

// Write records the latest committed operation.
func (h *Health) Write(events []*staking.Event) error {
	if len(events) == 0 {
		return nil
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastOp = events[len(events)-1].Kind
	h.lastOpTime = time.Now()
	return nil
}

func (h *Health) ClockOffset(offset time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockOffset = &offset
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{Healthy: true}
	if h.checkStore != nil {
		if err := h.checkStore(); err != nil {
			status.Healthy = false
			status.StoreError = err.Error()
		}
	}
	if h.clockOffset != nil {
		ms := h.clockOffset.Milliseconds()
		status.ClockOffsetMs = &ms
		if *h.clockOffset > clock.MaxDrift || *h.clockOffset < -clock.MaxDrift {
			status.Healthy = false
		}
	}
	if !h.lastOpTime.IsZero() {
		ts := h.lastOpTime
		status.LastOperation = &LastOperation{Kind: h.lastOp, Timestamp: &ts}
	}
	return status
}
