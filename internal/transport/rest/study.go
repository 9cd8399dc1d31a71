package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// studyService defines the minimal interface needed by StudyHandler.
type studyService interface {
	CreateSession(ctx context.Context) (study.View, error)
	GetView(ctx context.Context, id uuid.UUID) (study.View, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	LoadFile(ctx context.Context, input study.LoadFileInput) (study.View, error)
	ClearFile(ctx context.Context, id uuid.UUID) (study.View, error)
	Navigate(ctx context.Context, input study.NavigateInput) (study.View, error)
	GoTo(ctx context.Context, input study.GoToInput) (study.View, error)
	ToggleShowAll(ctx context.Context, id uuid.UUID) (study.View, error)
	ToggleEdit(ctx context.Context, id uuid.UUID) (study.View, error)
	SetFilter(ctx context.Context, input study.SetFilterInput) (study.View, error)
	SaveEdit(ctx context.Context, input study.SaveEditInput) (study.View, error)
	SetCredential(ctx context.Context, input study.SetCredentialInput) (study.View, error)
	DismissNotices(ctx context.Context, id uuid.UUID) (study.View, error)
	Export(ctx context.Context, input study.ExportInput) (*study.ExportResult, error)
}

// StudyHandler serves the study session REST endpoints.
type StudyHandler struct {
	svc       studyService
	log       *slog.Logger
	maxUpload int64
}

// NewStudyHandler creates a StudyHandler. maxUpload bounds request bodies of uploads.
func NewStudyHandler(svc studyService, logger *slog.Logger, maxUpload int64) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study"), maxUpload: maxUpload}
}

type createSessionResponse struct {
	ID   string     `json:"id"`
	View study.View `json:"view"`
}

type navigateRequest struct {
	Direction string `json:"direction"`
	Index     *int   `json:"index"`
}

type filterRequest struct {
	Categories []string `json:"categories"`
}

type saveEditRequest struct {
	Japanese string `json:"japanese"`
	Grammar  string `json:"grammar"`
}

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

// CreateSession handles POST /sessions.
func (h *StudyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.CreateSession(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: v.SessionID, View: v})
}

// GetView handles GET /sessions/{id}.
func (h *StudyHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.GetView)
}

// DeleteSession handles DELETE /sessions/{id}.
func (h *StudyHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadFile handles POST /sessions/{id}/file. The file comes either as the
// multipart field "file" or as the raw request body named by ?name=.
func (h *StudyHandler) LoadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	name, content, err := h.readUpload(w, r)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || (err == nil && h.maxUpload > 0 && int64(len(content)) > h.maxUpload) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxUpload))
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.svc.LoadFile(r.Context(), study.LoadFileInput{
		SessionID: id,
		FileName:  name,
		Content:   content,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// readUpload bounds the body by the upload limit. Multipart bodies get extra
// room for framing, so the caller still checks the file size itself.
func (h *StudyHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	multipart := mediaType == "multipart/form-data"

	if h.maxUpload > 0 {
		limit := h.maxUpload
		if multipart {
			limit += 64 << 10
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	if !multipart {
		content, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, err
		}
		return r.URL.Query().Get("name"), content, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return "", nil, err
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("multipart field %q: %w", "file", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, content, nil
}

// ClearFile handles DELETE /sessions/{id}/file.
func (h *StudyHandler) ClearFile(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.ClearFile)
}

// Navigate handles POST /sessions/{id}/navigate.
func (h *StudyHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		v   study.View
		err error
	)
	if req.Index != nil {
		v, err = h.svc.GoTo(r.Context(), study.GoToInput{SessionID: id, Index: *req.Index})
	} else {
		v, err = h.svc.Navigate(r.Context(), study.NavigateInput{
			SessionID: id,
			Direction: study.Direction(strings.ToLower(strings.TrimSpace(req.Direction))),
		})
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ToggleShowAll handles POST /sessions/{id}/show-all.
func (h *StudyHandler) ToggleShowAll(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.ToggleShowAll)
}

// ToggleEdit handles POST /sessions/{id}/edit-mode.
func (h *StudyHandler) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.ToggleEdit)
}

// SetFilter handles PUT /sessions/{id}/filter.
func (h *StudyHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req filterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	categories := make([]domain.GrammarCategory, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, domain.GrammarCategory(strings.TrimSpace(c)))
	}

	v, err := h.svc.SetFilter(r.Context(), study.SetFilterInput{SessionID: id, Categories: categories})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// SaveEdit handles PUT /sessions/{id}/sentences/{index}. The index is zero-based.
func (h *StudyHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sentence index")
		return
	}
	var req saveEditRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := h.svc.SaveEdit(r.Context(), study.SaveEditInput{
		SessionID: id,
		Index:     index,
		Japanese:  req.Japanese,
		Grammar:   req.Grammar,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// SetCredential handles PUT /sessions/{id}/credential.
func (h *StudyHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req credentialRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := h.svc.SetCredential(r.Context(), study.SetCredentialInput{SessionID: id, APIKey: req.APIKey})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DismissNotices handles DELETE /sessions/{id}/notices.
func (h *StudyHandler) DismissNotices(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.DismissNotices)
}

// Export handles GET /sessions/{id}/export?format=tsv|json|yaml.
func (h *StudyHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Export(r.Context(), study.ExportInput{
		SessionID: id,
		Format:    r.URL.Query().Get("format"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data) //nolint:errcheck
}

// withSession runs a session-only operation and writes the resulting view.
func (h *StudyHandler) withSession(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (study.View, error)) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	v, err := op(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// sessionID returns the session ID resolved by middleware.Session, falling
// back to the route parameter. It writes 400 when the ID is missing or malformed.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if id, ok := ctxutil.SessionIDFromCtx(r.Context()); ok {
		return id, true
	}
	id, err := uuid.Parse(r.PathValue(middleware.SessionPathParam))
	if err != nil || id == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
