// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/cache"
	"github.com/degenscore/stakepool/kv"
)

// Store is the persisted side of the state.
// All writers are serialized by a single lock.
type Store struct {
	db    kv.Store
	cache *cache.LRU
	mu    sync.RWMutex
}

// NewStore creates a store over db, caching up to cacheSize values.
func NewStore(db kv.Store, cacheSize int) (*Store, error) {
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create state cache")
	}
	return &Store{db: db, cache: c}, nil
}

// get loads committed value of key, nil if absent.
func (s *Store) get(key []byte) ([]byte, error) {
	v, err := s.cache.GetOrLoad(string(key), func(any) (any, error) {
		val, err := s.db.Get(key)
		if err != nil {
			if s.db.IsNotFound(err) {
				return []byte(nil), nil
			}
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Atomic runs fn on a fresh revertable state under the write lock.
// When fn returns nil every change is written in one batch, otherwise
// all of them are discarded and fn's error is returned as is.
// Hooks registered with State.OnCommit run after a successful write,
// in registration order, before the lock is released.
func (s *Store) Atomic(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := newState(s, false)
	if err := fn(st); err != nil {
		return err
	}
	if err := s.commit(st.changes()); err != nil {
		return err
	}
	for _, hook := range st.onCommit {
		hook()
	}
	return nil
}

// View runs fn on a read-only state under the read lock.
func (s *Store) View(fn func(st *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(newState(s, true))
}

func (s *Store) commit(changes map[string][]byte) error {
	if len(changes) == 0 {
		return nil
	}
	batch := s.db.NewBatch()
	for k, v := range changes {
		var err error
		if v == nil {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		// the cache may hold nothing newer than the store, drop it anyway
		s.cache.Purge()
		return &Error{err}
	}
	for k, v := range changes {
		s.cache.Add(k, v)
	}
	metricStateCommitCount().Add(1)
	metricStateWriteCount().Add(int64(len(changes)))
	return nil
}

// CacheStats returns the cache hit/miss counters.
func (s *Store) CacheStats() (bool, int64, int64) {
	return s.cache.Stats()
}
