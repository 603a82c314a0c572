// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package audit

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/api/utils"
	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/staking"
)

const defaultLimit = 100

type Audit struct {
	db    *auditdb.AuditDB
	limit uint64
}

// New creates the audit api. limit caps the page size, zero falls back to defaultLimit.
func New(db *auditdb.AuditDB, limit uint64) *Audit {
	if limit == 0 {
		limit = defaultLimit
	}
	return &Audit{db, limit}
}

func (a *Audit) parseFilter(req *http.Request) (*auditdb.Filter, error) {
	query := req.URL.Query()
	filter := &auditdb.Filter{}

	if s := query.Get("owner"); s != "" {
		owner, err := utils.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		filter.Owner = &owner
	}

	switch kind := staking.Op(query.Get("kind")); kind {
	case "", staking.OpDeposit, staking.OpClaim, staking.OpWithdraw:
		filter.Kind = kind
	default:
		return nil, utils.BadRequest(errors.Errorf("kind: unknown operation %q", kind))
	}

	from, err := utils.ParseInt64Query(query.Get("from"), "from", 0)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseInt64Query(query.Get("to"), "to", -1)
	if err != nil {
		return nil, err
	}
	if from != 0 || to >= 0 {
		filter.Range = &auditdb.Range{From: from, To: to}
	}

	offset, err := utils.ParseUint64Query(query.Get("offset"), "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.ParseUint64Query(query.Get("limit"), "limit", a.limit)
	if err != nil {
		return nil, err
	}
	if limit > a.limit {
		return nil, utils.BadRequest(errors.Errorf("limit: exceeds %d", a.limit))
	}
	filter.Options = &auditdb.Options{Offset: offset, Limit: limit}

	switch order := auditdb.Order(query.Get("order")); order {
	case "", auditdb.ASC, auditdb.DESC:
		filter.Order = order
	default:
		return nil, utils.BadRequest(errors.Errorf("order: expected asc or desc, got %q", order))
	}
	return filter, nil
}

func (a *Audit) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := a.parseFilter(req)
	if err != nil {
		return err
	}
	records, err := a.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	res := make([]*Record, 0, len(records))
	for _, r := range records {
		res = append(res, convertRecord(r))
	}
	return utils.WriteJSON(w, res)
}

func (a *Audit) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("audit_get_events").
		HandlerFunc(utils.WrapHandlerFunc(a.handleFilter))
}
