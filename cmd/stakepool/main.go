// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/degenscore/stakepool/admin"
	"github.com/degenscore/stakepool/api"
	"github.com/degenscore/stakepool/api/doc"
	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/genesis"
	"github.com/degenscore/stakepool/health"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Stakepool",
		Usage:     "DEGEN staking pool node",
		Copyright: "2025 DegensCore",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			genesisFlag,
			cacheFlag,
			stateCacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiAuditLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			ntpServerFlag,
			skipNTPFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "inspect",
				Usage:  "print the pool aggregate and check the books of a persisted instance",
				Flags:  []cli.Flag{dataDirFlag, genesisFlag, verbosityFlag, jsonLogsFlag},
				Action: inspectAction,
			},
			{
				Name:   "audit",
				Usage:  "print recorded staking events of a persisted instance",
				Flags:  []cli.Flag{dataDirFlag, ownerFlag, kindFlag, limitFlag, verbosityFlag, jsonLogsFlag},
				Action: auditAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		initMetrics()
	}

	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	instanceDir := "Memory"
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx); err != nil {
			return err
		}
	}

	mainDB, err := openStateDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing state database..."); mainDB.Close() }()

	auditDB, err := openAuditDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing audit database..."); auditDB.Close() }()
	logger.Debug("audit database opened", "path", auditDB.Path(), "sqlite", auditDB.DriverVersion())

	store, err := state.NewStore(mainDB, ctx.Int(stateCacheFlag.Name))
	if err != nil {
		return err
	}
	defer func() {
		_, hit, miss := store.CacheStats()
		logger.Debug("state cache", "hit", hit, "miss", miss)
	}()
	if _, err := gen.Apply(store); err != nil {
		return err
	}

	staker := staking.New(store, func(st *state.State) staking.Transferer { return token.New(st) }, clock.NewSystem())
	staker.SetThresholds(gen.Thresholds())
	if err := staker.CheckInvariants(); err != nil {
		return err
	}

	nodeHealth := health.New(func() error {
		_, err := staker.Pool()
		return err
	})
	staker.SetEventSink(staking.Sinks{auditDB, nodeHealth})
	if !ctx.Bool(skipNTPFlag.Name) {
		checkClock(ctx, nodeHealth)
	}

	reqLogs := &atomic.Bool{}
	reqLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(staker, store, auditDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		AuditLimit:           ctx.Uint64(apiAuditLimitFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      reqLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
	})

	group, gctx := errgroup.WithContext(exitSignal)

	apiURL, err := startAPIServer(gctx, group, ctx, handler)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		if err := startMetricsServer(gctx, group, ctx.String(metricsAddrFlag.Name)); err != nil {
			return err
		}
	}
	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, closeAdmin, err := admin.StartServer(ctx.String(adminAddrFlag.Name), admin.HTTPHandler(logLevel, reqLogs, nodeHealth))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeAdmin() }()
		logger.Info("admin server started", "url", adminURL)
	}

	printStartupMessage(gen, instanceDir, apiURL)
	return group.Wait()
}

func printStartupMessage(gen *genesis.Genesis, dataDir, apiURL string) {
	fmt.Printf(`Starting %v
    Authority   [ %v ]
    Custody     [ %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    API version [ %v ]
`,
		"stakepool "+fullVersion(),
		gen.Authority,
		gen.Custody,
		dataDir,
		apiURL,
		doc.Version(),
	)
}

// waitShutdown stops srv once ctx is done.
func waitShutdown(ctx context.Context, name string, shutdown func(context.Context) error) error {
	<-ctx.Done()
	logger.Info("stopping " + name + "...")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdown(sctx)
}
