// Package service is the REST adapter over the prefix index: a thin
// layer that maps HTTP method x path shape onto the core operations
// (status, lookup, verify, add, delete) and serializes results as
// JSON or YAML. It owns nothing the core doesn't already own; it just
// guards the shared index with a readers-writer lock and persists
// mutations through package store.
package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riverrun/cidrd/internal/tools"
	"github.com/riverrun/cidrd/log"
	"github.com/riverrun/cidrd/prefixindex"
	"github.com/riverrun/cidrd/store"

	"github.com/go-chi/chi"
)

// operation is one of the six core operations, reported to clients via
// the X-Operation response header.
type operation string

const (
	opStatus       operation = "Status"
	opBatchLookup  operation = "Batch-Lookup"
	opSingleLookup operation = "Single-Lookup"
	opVerify       operation = "Verify"
	opAdd          operation = "Add"
	opDelete       operation = "Delete"
)

// Server wraps a single shared prefixindex.Index with the
// readers-writer guard required by the concurrency model: lookups and
// verify take a read lock, add/delete/commit take a write lock.
type Server struct {
	dbPath string
	logger log.ContextLogger

	mu  sync.RWMutex
	idx *prefixindex.Index

	httpServer *http.Server
}

// New constructs a Server bound to the index loaded from dbPath.
func New(idx *prefixindex.Index, dbPath string, logger log.Logger) *Server {
	return &Server{
		dbPath: dbPath,
		logger: log.NewTagContextLogger(log.NewContextLogger(logger), "service"),
		idx:    idx,
	}
}

// Handler builds the chi router for the six routes in the REST
// contract. Every request is tagged via log.AddContextTag so that, in
// DEBUG output, the access line logged here and any error line a
// handler logs for the same request share one correlation tag.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.tagRequest)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.Get("/", s.handleStatus)
	r.Post("/", s.handleBatchLookup)
	r.Get("/{ip}", s.handleSingleLookup)
	r.Get("/{ip}/{p}", s.handleVerify)
	r.Put("/{ip}/{p}", s.handleAdd)
	r.Delete("/{ip}/{p}", s.handleDelete)
	return r
}

func (s *Server) tagRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.AddContextTag(r.Context())
		s.logger.DebugContext(ctx, r.Method, " ", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListenAndServe binds addr and serves until ctx is canceled, then
// drains in-flight requests and returns.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(fmt.Sprintf("listening on %s", addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed && !tools.IsCloseOrCanceled(err) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Warn("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) commit() error {
	return store.Commit(s.idx, s.dbPath)
}
