// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package audit

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/degen"
)

type Record struct {
	Seq         uint64              `json:"seq"`
	Kind        string              `json:"kind"`
	Owner       *degen.Address      `json:"owner"`
	Amount      math.HexOrDecimal64 `json:"amount"`
	Payout      math.HexOrDecimal64 `json:"payout"`
	Penalty     math.HexOrDecimal64 `json:"penalty"`
	LockSeconds int64               `json:"lockSeconds"`
	Tier        string              `json:"tier"`
	Time        int64               `json:"time"`
}

func convertRecord(r *auditdb.Record) *Record {
	owner := r.Owner
	return &Record{
		Seq:         r.Seq,
		Kind:        string(r.Kind),
		Owner:       &owner,
		Amount:      math.HexOrDecimal64(r.Amount),
		Payout:      math.HexOrDecimal64(r.Payout),
		Penalty:     math.HexOrDecimal64(r.Penalty),
		LockSeconds: r.LockSeconds,
		Tier:        r.Tier.String(),
		Time:        r.Time,
	}
}
