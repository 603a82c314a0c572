// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv is the key space the pool state is persisted in.
package kv

// Batch collects writes that land together or not at all.
type Batch interface {
	Put(key, val []byte) error
	Delete(key []byte) error
	Write() error
}

// Iterator walks keys in ascending order. Release it when done.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range is [Start, Limit).
type Range struct {
	Start []byte
	Limit []byte
}

// Store is what the state layer needs from a database. Reads go straight
// to the store, writes only through batches.
type Store interface {
	// Get fails for a missing key with an error matched by IsNotFound.
	Get(key []byte) ([]byte, error)
	IsNotFound(err error) bool
	NewBatch() Batch
	Iterate(r Range) Iterator
	Close() error
}
