// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb backs the pool state with goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/degenscore/stakepool/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// minCacheMiB is also the floor for open file handles.
const minCacheMiB = 16

// Options tunes the on-disk database.
type Options struct {
	CacheSize              int // MiB, split between block cache and write buffer
	OpenFilesCacheCapacity int
}

// Every batch is fsynced, an acknowledged deposit must survive a crash.
var writeOpt = opt.WriteOptions{Sync: true}

type LevelDB struct {
	db *leveldb.DB
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open state db at %s", path)
	}
	return open(stg, opts)
}

// NewMem opens a throwaway in-memory database.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	opts.CacheSize = max(opts.CacheSize, minCacheMiB)
	opts.OpenFilesCacheCapacity = max(opts.OpenFilesCacheCapacity, minCacheMiB)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSize / 2 * opt.MiB,
		WriteBuffer:            opts.CacheSize / 4 * opt.MiB, // two are kept in memory
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open state db")
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{db: l.db, b: new(leveldb.Batch)}
}

func (l *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return l.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, val []byte) error {
	b.b.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Write() error {
	return b.db.Write(b.b, &writeOpt)
}
