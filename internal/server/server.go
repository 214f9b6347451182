package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/repplan/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	userID int
	router chi.Router
}

// New creates a new Server with all routes configured. userID is the
// account all requests operate on; multi-tenancy is handled by running one
// instance per user behind tsnet.
func New(db *storage.DB, userID int, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		userID: userID,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetMCP mounts the MCP transport handler at /mcp. Auth for MCP traffic is
// the transport's concern; the handler runs outside the API key group.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/profile", s.handleGetProfile)
	s.router.Get("/api/v1/equipment", s.handleGetEquipment)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/split", s.handleSplit)
	s.router.Get("/api/v1/routines/latest", s.handleLatestRoutine)
	s.router.Get("/api/v1/routines/{id}", s.handleGetRoutine)
	s.router.Get("/api/v1/weights", s.handleQueryWeights)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/import-logs", s.handleImportLogs)

	// Write and compute endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/profile/analyze", s.handleAnalyzeProfile)
		r.Put("/api/v1/profile", s.handleUpdateProfile)
		r.Put("/api/v1/equipment", s.handleUpdateEquipment)
		r.Post("/api/v1/weights", s.handleInsertWeights)
		r.Post("/api/v1/routines/generate", s.handleGenerateRoutine)
		r.Post("/api/v1/adaptation/check", s.handleAdaptationCheck)
	})
}
