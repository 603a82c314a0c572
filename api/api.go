// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/degenscore/stakepool/api/audit"
	"github.com/degenscore/stakepool/api/doc"
	"github.com/degenscore/stakepool/api/middleware"
	"github.com/degenscore/stakepool/api/stakes"
	"github.com/degenscore/stakepool/api/tokens"
	"github.com/degenscore/stakepool/auditdb"
	"github.com/degenscore/stakepool/log"
	"github.com/degenscore/stakepool/staking"
	"github.com/degenscore/stakepool/state"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	AuditLimit           uint64
	PprofOn              bool
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
}

// New return api router. auditDB may be nil, the audit endpoints are then not mounted.
func New(
	staker *staking.Staker,
	store *state.Store,
	auditDB *auditdb.AuditDB,
	opts Options,
) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	// serve the open api spec
	router.PathPrefix("/doc").Handler(
		http.StripPrefix("/doc/", http.FileServer(http.FS(doc.FS))),
	)
	router.Path("/").HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "doc/stakepool.yaml", http.StatusTemporaryRedirect)
		})

	stakes.New(staker).
		Mount(router, "/staking")
	tokens.New(store).
		Mount(router, "/tokens")
	if auditDB != nil {
		audit.New(auditDB, opts.AuditLimit).
			Mount(router, "/audit")
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.ExposedHeaders([]string{"x-stakepool-ver"}),
	)(handler)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	handler = middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)

	return versionHeader(handler)
}

func versionHeader(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-stakepool-ver", doc.Version())
		h.ServeHTTP(w, r)
	})
}
