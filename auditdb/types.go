// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auditdb

import (
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/staking/tier"
)

// Record is a stored staking event.
type Record struct {
	Seq         uint64
	Kind        staking.Op
	Owner       degen.Address
	Amount      uint64
	Payout      uint64
	Penalty     uint64
	LockSeconds int64
	Tier        tier.Tier
	Time        int64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive time range in unix seconds. To < From leaves the
// range open ended.
type Range struct {
	From int64
	To   int64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type Filter struct {
	Owner   *degen.Address
	Kind    staking.Op
	Range   *Range
	Options *Options
	Order   Order // default asc
}
