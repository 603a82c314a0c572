// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket is a key prefix that gives each record kind its own key space,
// e.g. stakes under "stake." and balances under "token.balance.".
type Bucket string

// Key returns key inside the bucket.
func (b Bucket) Key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// Range covers every key in the bucket.
func (b Bucket) Range() Range {
	r := util.BytesPrefix([]byte(b))
	return Range{Start: r.Start, Limit: r.Limit}
}
