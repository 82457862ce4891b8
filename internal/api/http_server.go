// Package api exposes the services over HTTP. Serialization, header parsing
// and status-code mapping live here; the services stay format-agnostic.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/service"

	"github.com/rs/zerolog"
)

// HeaderUserID carries the acting user's id on every request that needs one.
const HeaderUserID = "X-Sharer-User-Id"

// Deps bundles everything the HTTP surface serves.
type Deps struct {
	Bookings *service.BookingService
	Items    *service.ItemService
	Users    *service.UserService
	Requests *service.RequestService
	Exporter *export.Exporter
	Limiter  domain.RateLimiter
}

type HTTPServer struct {
	deps     Deps
	pageSize int
	log      zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(cfg config.HTTPConfig, pageSize int, deps Deps, logger *zerolog.Logger) *HTTPServer {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "http").Logger()
	}

	srv := &HTTPServer{deps: deps, pageSize: pageSize, log: log}

	handler := requestLogger(srv.routes(), log)
	if deps.Limiter != nil {
		handler = rateLimit(handler, deps.Limiter, log)
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return srv
}

func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookingsForBooker)
	mux.HandleFunc("GET /bookings/owner", s.handleListBookingsForOwner)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleSetApproval)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleListOtherRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	mux.HandleFunc("GET /admin/bookings/export", s.handleExportBookings)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// Handler returns the fully wrapped handler, used directly in tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// actorID extracts the acting user id from the sharer header.
func actorID(r *http.Request) (int64, error) {
	raw := r.Header.Get(HeaderUserID)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", HeaderUserID)
	}
	return id, nil
}

// pathID extracts the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id in path")
	}
	return id, nil
}

// pageParams reads the from/size query parameters, defaulting size to the
// configured page size. Validation and snapping happen in the paging policy.
func (s *HTTPServer) pageParams(r *http.Request) (int, int, error) {
	offset := 0
	limit := s.pageSize

	if raw := r.URL.Query().Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid from parameter")
		}
		offset = v
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid size parameter")
		}
		limit = v
	}
	return offset, limit, nil
}
