package server

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
	"github.com/Archit-bit/voice-diary-app/internal/store"
)

// RecordStore is the persistence surface the HTTP layer reads and writes.
type RecordStore interface {
	ListByDateRange(owner, from, to string, order store.Order) ([]*journal.DailyRecord, error)
	UpdateExtracted(owner, id string, extracted *journal.ExtractedPayload) (*journal.DailyRecord, error)
	Ping() error
}

// Processor runs the capture pipeline for one submission.
type Processor interface {
	Process(ctx context.Context, owner, logDate string, audio []byte, mimeType string) (*journal.DailyRecord, error)
}

// HealthChecker reports reachability of an optional subsystem.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type Server struct {
	users     *auth.Registry
	records   RecordStore
	processor Processor
	archive   HealthChecker
	static    fs.FS
	mux       *http.ServeMux
}

func New(users *auth.Registry, records RecordStore, processor Processor, archive HealthChecker, static fs.FS) *Server {
	s := &Server{
		users:     users,
		records:   records,
		processor: processor,
		archive:   archive,
		static:    static,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/status", s.auth(s.handleStatus))
	mux.HandleFunc("POST /api/records/process", s.auth(s.handleProcess))
	mux.HandleFunc("GET /api/records", s.auth(s.handleList))
	mux.HandleFunc("PUT /api/records/{id}", s.auth(s.handleUpdate))

	if static != nil {
		mux.Handle("GET /", http.FileServer(http.FS(static)))
	}

	s.mux = mux

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

type ctxKey int

const userKey ctxKey = 0

// auth resolves the bearer token into a principal. Every handler downstream
// derives the owner from the session, never from the request body.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, ok := s.users.ByToken(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func currentUser(r *http.Request) *auth.User {
	u, _ := r.Context().Value(userKey).(*auth.User)
	return u
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
