package rest

import (
	"net/http"

	"github.com/heartmarshall/myenglish-study/internal/transport/middleware"
)

// RouterConfig wires handlers and middleware into the HTTP routing table.
type RouterConfig struct {
	Study  *StudyHandler
	Health *HealthHandler
	// Limiter guards routes that can fan out into completion calls. Optional.
	Limiter         *middleware.RateLimiter
	UploadPerMinute int
	// Global wraps the whole mux, outermost first.
	Global []middleware.Middleware
}

// NewRouter builds the application handler.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", cfg.Health.Live)
	mux.HandleFunc("GET /ready", cfg.Health.Ready)
	mux.HandleFunc("GET /health", cfg.Health.Health)

	session := middleware.Session()
	limited := session
	if cfg.Limiter != nil && cfg.UploadPerMinute > 0 {
		limited = middleware.Chain(session, cfg.Limiter.Limit(cfg.UploadPerMinute))
	}
	handle := func(pattern string, mw middleware.Middleware, fn http.HandlerFunc) {
		mux.Handle(pattern, mw(fn))
	}

	s := cfg.Study
	mux.HandleFunc("POST /sessions", s.CreateSession)
	handle("GET /sessions/{id}", session, s.GetView)
	handle("DELETE /sessions/{id}", session, s.DeleteSession)
	handle("POST /sessions/{id}/file", limited, s.LoadFile)
	handle("DELETE /sessions/{id}/file", session, s.ClearFile)
	handle("POST /sessions/{id}/navigate", session, s.Navigate)
	handle("POST /sessions/{id}/show-all", session, s.ToggleShowAll)
	handle("POST /sessions/{id}/edit-mode", session, s.ToggleEdit)
	handle("PUT /sessions/{id}/filter", session, s.SetFilter)
	handle("PUT /sessions/{id}/sentences/{index}", session, s.SaveEdit)
	handle("PUT /sessions/{id}/credential", limited, s.SetCredential)
	handle("DELETE /sessions/{id}/notices", session, s.DismissNotices)
	handle("GET /sessions/{id}/export", session, s.Export)

	return middleware.Chain(cfg.Global...)(mux)
}
