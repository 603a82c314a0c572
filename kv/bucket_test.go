// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket(t *testing.T) {
	b := Bucket("s.")

	assert.Equal(t, []byte("s.k"), b.Key([]byte("k")))
	assert.Equal(t, []byte("s."), b.Key(nil))

	// keys must not alias each other
	k1 := b.Key([]byte("a"))
	k2 := b.Key([]byte("b"))
	assert.Equal(t, []byte("s.a"), k1)
	assert.Equal(t, []byte("s.b"), k2)

	r := b.Range()
	assert.Equal(t, []byte("s."), r.Start)
	assert.Equal(t, []byte("s/"), r.Limit)

	inside := func(k []byte) bool {
		return bytes.Compare(k, r.Start) >= 0 && bytes.Compare(k, r.Limit) < 0
	}
	assert.True(t, inside(b.Key([]byte{0xff, 0xff})))
	assert.False(t, inside([]byte("s")))
	assert.False(t, inside(Bucket("t.").Key([]byte("a"))))
}
