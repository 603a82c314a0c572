// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auditdb indexes committed staking events in sqlite.
package auditdb

import (
	"context"
	"database/sql"
	"strconv"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/staking/tier"
)

var _ staking.EventSink = (*AuditDB)(nil)

type AuditDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open audit db at given path.
func New(path string) (auditDB *AuditDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if auditDB == nil {
			db.Close()
		}
	}()
	// every connection to :memory: is a distinct database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(stakeEventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &AuditDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create an audit db in ram.
func NewMem() (*AuditDB, error) {
	return New(":memory:")
}

// Close close the audit db.
func (db *AuditDB) Close() error {
	return db.db.Close()
}

func (db *AuditDB) Path() string {
	return db.path
}

func (db *AuditDB) DriverVersion() string {
	return db.driverVersion
}

// Write stores events in one transaction.
func (db *AuditDB) Write(events []*staking.Event) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`INSERT INTO stake_event(kind, owner, amount, payout, penalty, lockSeconds, tier, time)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err = stmt.Exec(
			string(ev.Kind),
			ev.Owner.Bytes(),
			formatUint(ev.Amount),
			formatUint(ev.Payout),
			formatUint(ev.Penalty),
			ev.LockSeconds,
			int64(ev.Tier),
			ev.Time,
		); err != nil {
			return errors.Wrap(err, "insert stake event")
		}
	}
	metricWrittenCount().Add(int64(len(events)))
	return tx.Commit()
}

// Filter queries records matching filter, all records if filter is nil.
func (db *AuditDB) Filter(ctx context.Context, filter *Filter) ([]*Record, error) {
	const query = "SELECT seq, kind, owner, amount, payout, penalty, lockSeconds, tier, time FROM stake_event"
	if filter == nil {
		return db.query(ctx, query+" ORDER BY seq ASC")
	}

	var args []any
	stmt := query + " WHERE 1"
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ? "
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		stmt += " AND kind = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *AuditDB) query(ctx context.Context, stmt string, args ...any) ([]*Record, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq                     uint64
			kind                    string
			owner                   []byte
			amount, payout, penalty string
			lockSeconds             int64
			tierValue               int64
			time                    int64
		)
		if err := rows.Scan(&seq, &kind, &owner, &amount, &payout, &penalty, &lockSeconds, &tierValue, &time); err != nil {
			return nil, err
		}
		rec := &Record{
			Seq:         seq,
			Kind:        staking.Op(kind),
			Owner:       degen.BytesToAddress(owner),
			LockSeconds: lockSeconds,
			Tier:        tier.Tier(tierValue),
			Time:        time,
		}
		if rec.Amount, err = parseUint(amount); err != nil {
			return nil, err
		}
		if rec.Payout, err = parseUint(payout); err != nil {
			return nil, err
		}
		if rec.Penalty, err = parseUint(penalty); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return v, errors.Wrapf(err, "decode amount %q", s)
}
