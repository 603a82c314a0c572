// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/degenscore/stakepool/metrics"

var (
	metricStateCommitCount = metrics.LazyLoadCounter("state_commit_count")
	metricStateWriteCount  = metrics.LazyLoadCounter("state_key_write_count")
)
