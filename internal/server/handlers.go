package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bigbang/pkg/buildinfo"
	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/pipeline"
	"github.com/matzehuels/bigbang/pkg/render"
)

// Response headers set on layout and render responses.
const (
	HeaderLayoutID = "X-Layout-Id"
	HeaderCache    = "X-Cache"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	l, hit, err := s.layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	setLayoutHeaders(w, l.ID, hit)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	f, err := queryFormat(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	l, _, err := s.layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(r.Context(), w, l, opts, f)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(HeaderLayoutID, l.ID)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	f, err := queryFormat(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	l, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.defaults
	opts.Legend = r.URL.Query().Get("legend") == "true"
	s.render(r.Context(), w, l, opts, f)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Pipeline
// =============================================================================

func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if opts.Records == nil {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "records is required")
	}
	opts.Input = ""
	opts.Logger = s.logger
	return opts, nil
}

// layout computes the layout for opts and archives it.
func (s *Server) layout(ctx context.Context, opts pipeline.Options) (layout.Layout, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recs, err := s.runner.Load(ctx, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}
	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}
	if err := s.store.Save(ctx, l); err != nil {
		s.logger.Warn("archive layout failed", "id", l.ID, "err", err)
	}
	return l, hit, nil
}

func (s *Server) render(ctx context.Context, w http.ResponseWriter, l layout.Layout, opts pipeline.Options, f render.Format) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts.Formats = []render.Format{f}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	setLayoutHeaders(w, l.ID, hit)
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[f])
}

// =============================================================================
// Helpers
// =============================================================================

func queryFormat(r *http.Request) (render.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return pipeline.DefaultFormat, nil
	}
	return render.ParseFormat(v)
}

func setLayoutHeaders(w http.ResponseWriter, id string, hit bool) {
	w.Header().Set(HeaderLayoutID, id)
	if hit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
}

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidItem, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
