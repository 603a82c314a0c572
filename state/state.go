// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/degenscore/stakepool/kv"
	"github.com/degenscore/stakepool/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State is the revertable working set of one operation.
// A nil value in the journal marks a deleted key.
type State struct {
	store    *Store
	sm       *stackedmap.StackedMap[string, []byte]
	readOnly bool
	onCommit []func()
}

func newState(store *Store, readOnly bool) *State {
	s := &State{store: store, readOnly: readOnly}
	s.sm = stackedmap.New(func(key string) ([]byte, bool, error) {
		val, err := store.get([]byte(key))
		if err != nil {
			return nil, false, err
		}
		return val, true, nil
	})
	return s
}

// Get returns the value of key, nil if absent.
func (s *State) Get(key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return val, nil
}

// Has returns whether key holds a value.
func (s *State) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Set puts value for key. An empty value deletes the key.
func (s *State) Set(key, val []byte) {
	if s.readOnly {
		panic("state: write in read-only view")
	}
	if len(val) == 0 {
		val = nil
	} else {
		val = bytes.Clone(val)
	}
	s.sm.Put(string(key), val)
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.Set(key, nil)
}

// DecodeValue decodes rlp encoded value of key into val.
// It returns false without touching val when the key is absent.
func (s *State) DecodeValue(key []byte, val any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := rlp.DecodeBytes(data, val); err != nil {
		return false, &Error{err}
	}
	return true, nil
}

// EncodeValue rlp encodes val and stores it under key.
func (s *State) EncodeValue(key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return &Error{err}
	}
	s.Set(key, data)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Iterate calls fn for every live key under r in ascending key order,
// merging uncommitted changes over the committed store.
// The traversal stops when fn returns false.
func (s *State) Iterate(r kv.Range, fn func(key, val []byte) bool) error {
	inRange := func(k []byte) bool {
		if len(r.Start) > 0 && bytes.Compare(k, r.Start) < 0 {
			return false
		}
		return len(r.Limit) == 0 || bytes.Compare(k, r.Limit) < 0
	}

	overlay := make(map[string][]byte)
	s.sm.Journal(func(k string, v []byte) bool {
		if inRange([]byte(k)) {
			overlay[k] = v
		}
		return true
	})

	merged := make(map[string][]byte)
	it := s.store.db.Iterate(r)
	for it.Next() {
		k := string(it.Key())
		if _, changed := overlay[k]; changed {
			continue
		}
		merged[k] = bytes.Clone(it.Value())
	}
	it.Release()
	if err := it.Error(); err != nil {
		return &Error{err}
	}
	for k, v := range overlay {
		if v != nil {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k), merged[k]) {
			break
		}
	}
	return nil
}

// OnCommit registers fn to run once the state is written. Commit hooks run
// inside the store's serialization domain, so they must not open another
// Atomic or View on the same store.
func (s *State) OnCommit(fn func()) {
	s.onCommit = append(s.onCommit, fn)
}

// changes folds the journal into the final value of every touched key.
func (s *State) changes() map[string][]byte {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k string, v []byte) bool {
		changes[k] = v
		return true
	})
	return changes
}
