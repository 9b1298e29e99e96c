package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/store"
)

// =============================================================================
// Wire types
// =============================================================================

// layoutResponse is the GET body. Revision and UpdatedAt are omitted when
// nothing is stored.
type layoutResponse struct {
	Layout    layout.Layout `json:"layout"`
	Revision  string        `json:"revision,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitzero"`
}

// putRequest wraps a write body so the validator can dive into the records.
type putRequest struct {
	Layout layout.Layout `json:"layout" validate:"max=256,dive"`
}

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	bp, err := breakpointParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.store.Get(r.Context(), ownerFrom(r.Context()), bp)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeStorage, err, "load layout %s", bp))
		return
	}
	if doc == nil {
		writeJSON(w, http.StatusOK, layoutResponse{Layout: layout.Layout{}})
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:    doc.Layout,
		Revision:  doc.Revision,
		UpdatedAt: doc.UpdatedAt,
	})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	bp, err := breakpointParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.decodeLayout(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner := ownerFrom(r.Context())
	doc := store.NewDocument(owner, bp, layout.Normalize(l))
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeStorage, err, "save layout %s", bp))
		return
	}
	s.metrics.writes.WithLabelValues(bp.String()).Inc()
	s.logger.Debug("layout stored", "owner", owner, "breakpoint", bp, "records", len(doc.Layout), "revision", doc.Revision)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	bp, err := breakpointParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner := ownerFrom(r.Context())
	if err := s.store.Delete(r.Context(), owner, bp); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeStorage, err, "delete layout %s", bp))
		return
	}
	s.logger.Debug("layout deleted", "owner", owner, "breakpoint", bp)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Helpers
// =============================================================================

func breakpointParam(r *http.Request) (layout.Breakpoint, error) {
	return layout.ParseBreakpoint(chi.URLParam(r, "breakpoint"))
}

// decodeLayout reads and validates a write body: a bare record array.
func (s *Server) decodeLayout(w http.ResponseWriter, r *http.Request) (layout.Layout, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.New(apperr.ErrCodeQuotaExceeded, "layout exceeds %d bytes", tooLarge.Limit)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read body")
	}

	var req putRequest
	if err := json.Unmarshal(data, &req.Layout); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "layout must be a JSON array of placement records")
	}
	if err := s.validate.StructCtx(r.Context(), req); err != nil {
		return nil, validationError(err)
	}
	return req.Layout, nil
}

// writeError responds with the status mapped from err's code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}

	var rl *apperr.RateLimitedError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: apperr.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
