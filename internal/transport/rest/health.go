package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/heartmarshall/myenglish-study/internal/service/study"
)

const healthTimeout = 3 * time.Second

// Health status values.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type statsProvider interface {
	Stats(ctx context.Context) (study.Stats, error)
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	stats   statsProvider
	version string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(stats statsProvider, version string) *HealthHandler {
	return &HealthHandler{stats: stats, version: version, started: time.Now(), now: time.Now}
}

// HealthResponse is the JSON body of all three endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.now()})
}

// Ready answers 200 while the session store responds and 503 otherwise.
// A store at its session cap is not ready for new learners.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	stats, err := h.stats.Stats(ctx)
	if err != nil || atCapacity(stats) {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: statusDown, Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.now()})
}

// Health reports the session store and the completion provider. A missing
// default credential is "disabled", not a failure. A full store makes the
// service "degraded" but still 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	start := h.now()
	stats, err := h.stats.Stats(ctx)
	latency := h.now().Sub(start)

	resp := HealthResponse{
		Status:     statusOK,
		Version:    h.version,
		Uptime:     h.now().Sub(h.started).Truncate(time.Second).String(),
		Components: make(map[string]CompStatus, 2),
	}

	code := http.StatusOK
	switch {
	case err != nil:
		resp.Status = statusDown
		resp.Components["sessions"] = CompStatus{Status: statusDown}
		code = http.StatusServiceUnavailable
	default:
		sessions := CompStatus{
			Status:  statusOK,
			Detail:  sessionDetail(stats),
			Latency: latency.String(),
		}
		if atCapacity(stats) {
			sessions.Status = statusDegraded
			resp.Status = statusDegraded
		}
		resp.Components["sessions"] = sessions
		resp.Components["llm"] = llmStatus(stats)
	}

	resp.Timestamp = h.now()
	writeJSON(w, code, resp)
}

func atCapacity(s study.Stats) bool {
	return s.MaxSessions > 0 && s.ActiveSessions >= s.MaxSessions
}

func sessionDetail(s study.Stats) string {
	if s.MaxSessions > 0 {
		return fmt.Sprintf("%d/%d active", s.ActiveSessions, s.MaxSessions)
	}
	return fmt.Sprintf("%d active", s.ActiveSessions)
}

func llmStatus(s study.Stats) CompStatus {
	if !s.LLMConfigured {
		return CompStatus{Status: statusDisabled, Detail: "no default credential"}
	}
	return CompStatus{Status: statusOK, Detail: s.LLMProvider}
}
