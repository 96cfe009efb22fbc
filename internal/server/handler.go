// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server exposes the games queries over HTTP and reports service
// health over gRPC.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "nhdbstats/server/internal/errors"
	"nhdbstats/server/internal/logging"

	"github.com/pterm/pterm"
)

// Executor runs a query with positional arguments and returns JSON text.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (string, error)
}

// Options are the per-request query settings.
type Options struct {
	Variant  string
	RowLimit int
	// QueryTimeout bounds each request's database work; zero means no limit.
	QueryTimeout time.Duration
}

type handler struct {
	exec   Executor
	logger *pterm.Logger
	opts   Options
}

// NewHandler routes GET /, /healthz, /ascended and /realtime.
func NewHandler(exec Executor, logger *pterm.Logger, opts Options) http.Handler {
	h := &handler{exec: exec, logger: logger, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Hello world!")
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
	mux.Handle("GET /ascended", h.games(AscendedQuery))
	mux.Handle("GET /realtime", h.games(RealtimeQuery))
	return h.logRequests(mux)
}

func (h *handler) games(q Query) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if h.opts.QueryTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.opts.QueryTimeout)
			defer cancel()
		}

		body, err := h.exec.Execute(ctx, q.SQL, h.opts.Variant, int64(h.opts.RowLimit))
		if err != nil {
			h.writeFault(w, q, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

type faultBody struct {
	Error  string `json:"error"`
	Column string `json:"column,omitempty"`
}

// statusFor maps a fault kind to an HTTP status.
func statusFor(kind apperrors.Kind) int {
	if kind == apperrors.ConnectFailed {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *handler) writeFault(w http.ResponseWriter, q Query, err error) {
	kind := apperrors.KindOf(err)
	if kind == "" {
		kind = "internal"
	}
	column := apperrors.ColumnOf(err)

	h.logger.Error("query failed", h.logger.Args(
		"query", q.Name,
		"kind", string(kind),
		"column", column,
		"error", logging.Mask(err.Error()),
	))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(kind))
	json.NewEncoder(w).Encode(faultBody{Error: string(kind), Column: column})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request", h.logger.Args(
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		))
	})
}
