// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the persisted key/value world of the stake pool.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ batch ] -> [ kv store ]
//	         |
//	    [ lru cache ]
//	         |
//	    [ kv store ]
//
// Every mutation runs inside Store.Atomic. Changes are journaled in memory
// and flushed as one batch when the callback returns nil; otherwise they are
// dropped, so readers never observe a partially applied operation.
package state
