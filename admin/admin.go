// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/degenscore/stakepool/health"
)

func HTTPHandler(logLevel *slog.LevelVar, apiLogs *atomic.Bool, h *health.Health) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()
	sub.Path("/loglevel").
		Methods(http.MethodGet).
		HandlerFunc(getLogLevelHandler(logLevel))
	sub.Path("/loglevel").
		Methods(http.MethodPost).
		HandlerFunc(postLogLevelHandler(logLevel))
	sub.Path("/apilogs").
		Methods(http.MethodGet).
		HandlerFunc(getAPILogsHandler(apiLogs))
	sub.Path("/apilogs").
		Methods(http.MethodPost).
		HandlerFunc(postAPILogsHandler(apiLogs))
	sub.Path("/health").
		Methods(http.MethodGet).
		HandlerFunc(healthHandler(h))
	return handlers.CompressHandler(router)
}

// StartServer serves handler on addr until the returned func is called.
func StartServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var group errgroup.Group
	group.Go(func() error {
		return srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		group.Wait()
	}, nil
}
