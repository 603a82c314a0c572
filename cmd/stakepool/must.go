// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/clock"
	"github.com/degenscore/stakepool/genesis"
	"github.com/degenscore/stakepool/health"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/lvldb"
	"github.com/degenscore/stakepool/metrics"
)

const requestBodyLimitBytes = 64 * 1024

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl := ctx.Int(verbosityFlag.Name)
	if lvl < 0 {
		return nil, errors.Errorf("unknown verbosity level %v", lvl)
	}
	level := &slog.LevelVar{}
	level.Set(log.FromLegacyLevel(lvl))

	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name))))
	return level, nil
}

// newLogHandler picks the colored terminal format for interactive output
// and logfmt or json otherwise.
func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs bool) slog.Handler {
	format := log.FormatLogfmt
	if jsonLogs {
		format = log.FormatJSON
	} else if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		format = log.FormatTerminal
	}
	return log.NewHandler(w, level, format)
}

func initMetrics() {
	metrics.InitializePrometheusMetrics()
	logger.Info("metrics enabled")
}

// checkClock warns when the local clock drifts from the ntp server, rewards
// are priced by it.
func checkClock(ctx *cli.Context, h *health.Health) {
	server := ctx.String(ntpServerFlag.Name)
	offset, err := clock.CheckOffset(server)
	if err != nil {
		logger.Warn("failed to check local clock", "server", server, "err", err)
		return
	}
	h.ClockOffset(offset)
	logger.Debug("local clock checked", "server", server, "offset", offset)
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.Load(path)
	if err != nil {
		return nil, errors.WithMessage(err, "load genesis")
	}
	return gen, nil
}

func makeInstanceDir(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return "", errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dir)
	}
	return dir, nil
}

func openStateDB(ctx *cli.Context, instanceDir string) (*lvldb.LevelDB, error) {
	if instanceDir == "Memory" {
		return lvldb.NewMem()
	}
	path := filepath.Join(instanceDir, "state.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open state database [%v]", path)
	}
	return db, nil
}

func openAuditDB(instanceDir string) (*auditdb.AuditDB, error) {
	if instanceDir == "Memory" {
		return auditdb.NewMem()
	}
	path := filepath.Join(instanceDir, "audit.db")
	db, err := auditdb.New(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open audit database [%v]", path)
	}
	return db, nil
}

func startAPIServer(ctx context.Context, group *errgroup.Group, cliCtx *cli.Context, handler http.Handler) (string, error) {
	addr := cliCtx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := cliCtx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = http.TimeoutHandler(handler, time.Duration(timeout)*time.Millisecond, "request timeout")
	}
	handler = requestBodyLimit(handler)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		return waitShutdown(ctx, "API server", srv.Shutdown)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func startMetricsServer(ctx context.Context, group *errgroup.Group, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router, ReadHeaderTimeout: time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		return waitShutdown(ctx, "metrics server", srv.Shutdown)
	})
	logger.Info("metrics server started", "url", "http://"+listener.Addr().String()+"/metrics")
	return nil
}

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, requestBodyLimitBytes)
		h.ServeHTTP(w, r)
	})
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.degenscore.stakepool")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.degenscore.stakepool")
		}
		return filepath.Join(home, ".org.degenscore.stakepool")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
