// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

func existingDataDir(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if _, err := os.Stat(filepath.Join(dir, "state.db")); err != nil {
		return "", errors.Wrapf(err, "no persisted instance in [%v]", dir)
	}
	return dir, nil
}

func inspectAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	dir, err := existingDataDir(ctx)
	if err != nil {
		return err
	}
	db, err := openStateDB(ctx, dir)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := state.NewStore(db, ctx.Int(stateCacheFlag.Name))
	if err != nil {
		return err
	}
	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	staker := staking.New(store, func(st *state.State) staking.Transferer { return token.New(st) }, clock.NewSystem())
	staker.SetThresholds(gen.Thresholds())
	return inspect(os.Stdout, store, staker)
}

func inspect(w io.Writer, store *state.Store, staker *staking.Staker) error {
	agg, err := staker.Pool()
	if err != nil {
		return err
	}

	var custody uint64
	if err := store.View(func(st *state.State) (err error) {
		custody, err = token.New(st).BalanceOf(agg.Custody)
		return
	}); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "authority\t%v\n", agg.Authority)
	fmt.Fprintf(tw, "reward reserve\t%v\n", agg.RewardReserve)
	fmt.Fprintf(tw, "custody\t%v\n", agg.Custody)
	fmt.Fprintf(tw, "total staked\t%v\n", degen.FormatTokens(agg.TotalStaked))
	fmt.Fprintf(tw, "participants\t%v\n", agg.TotalParticipants)
	fmt.Fprintf(tw, "penalty reserve\t%v\n", degen.FormatTokens(agg.PenaltyReserve))
	fmt.Fprintf(tw, "custody balance\t%v\n", degen.FormatTokens(custody))
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := staker.CheckInvariants(); err != nil {
		return err
	}
	if custody != agg.TotalStaked+agg.PenaltyReserve {
		return errors.Errorf("custody balance %v, expected %v", custody, agg.TotalStaked+agg.PenaltyReserve)
	}
	fmt.Fprintln(w, "books balanced")
	return nil
}

func auditAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	dir, err := existingDataDir(ctx)
	if err != nil {
		return err
	}
	db, err := auditdb.New(filepath.Join(dir, "audit.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	filter := &auditdb.Filter{
		Kind:    staking.Op(ctx.String(kindFlag.Name)),
		Options: &auditdb.Options{Limit: ctx.Uint64(limitFlag.Name)},
		Order:   auditdb.DESC,
	}
	if s := ctx.String(ownerFlag.Name); s != "" {
		owner, err := degen.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "owner")
		}
		filter.Owner = &owner
	}

	records, err := db.Filter(context.Background(), filter)
	if err != nil {
		return err
	}
	return printRecords(os.Stdout, records)
}

func printRecords(w io.Writer, records []*auditdb.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tTIME\tKIND\tOWNER\tAMOUNT\tPAYOUT\tPENALTY\tTIER")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%v\t%s\t%s\t%s\t%v\n",
			r.Seq, r.Time, r.Kind, r.Owner,
			degen.FormatTokens(r.Amount), degen.FormatTokens(r.Payout), degen.FormatTokens(r.Penalty),
			r.Tier)
	}
	return tw.Flush()
}
