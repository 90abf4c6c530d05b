package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	oserrors "github.com/Inutilepat83/OSI-Cards-sub011/pkg/errors"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pack"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/store"
)

// maxBodySize caps request bodies at 4 MiB; section batches are small.
const maxBodySize = 4 << 20

// packRequest is the body of POST /v1/pack.
type packRequest struct {
	Sections []pipeline.SectionInput `json:"sections"`
	Options  pipeline.Options        `json:"options"`
}

// packResponse is the reply of POST /v1/pack.
type packResponse struct {
	Layout   grid.LayoutResult `json:"layout"`
	Quality  score.Quality     `json:"quality"`
	CacheHit bool              `json:"cache_hit"`
	Stats    packStats         `json:"stats"`
}

type packStats struct {
	SectionCount int    `json:"section_count"`
	Columns      int    `json:"columns"`
	EstimateMS   int64  `json:"estimate_ms"`
	PackMS       int64  `json:"pack_ms"`
	SectionsHash string `json:"sections_hash,omitempty"`
}

// saveLayoutRequest is the body of POST /v1/layouts.
type saveLayoutRequest struct {
	Name     string            `json:"name"`
	Strategy string            `json:"strategy,omitempty"`
	Result   grid.LayoutResult `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": pack.Strategies(),
		"default":    pack.DefaultStrategy,
	})
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Sections) == 0 {
		writeError(w, oserrors.New(oserrors.ErrCodeInvalidInput, "sections are required"))
		return
	}
	req.Options.SetPackDefaults()
	if err := req.Options.ValidateForPack(); err != nil {
		writeError(w, oserrors.New(oserrors.ErrCodeInvalidConfig, "invalid options: %v", err))
		return
	}

	req.Options.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), req.Sections, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, packResponse{
		Layout:   result.Layout,
		Quality:  result.Quality,
		CacheHit: result.CacheInfo.PackHit,
		Stats: packStats{
			SectionCount: result.Stats.SectionCount,
			Columns:      result.Stats.Columns,
			EstimateMS:   result.Stats.EstimateTime.Milliseconds(),
			PackMS:       result.Stats.PackTime.Milliseconds(),
			SectionsHash: result.SectionsHash,
		},
	})
}

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	var req saveLayoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := oserrors.ValidateLayoutName(req.Name); err != nil {
		writeError(w, err)
		return
	}
	if err := grid.ValidateConfig(req.Result.Config); err != nil {
		writeError(w, oserrors.Wrap(oserrors.ErrCodeInvalidConfig, err, "layout config"))
		return
	}

	layout := store.SavedLayout{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Strategy:  req.Strategy,
		CreatedAt: time.Now().UTC(),
		Result:    req.Result,
	}
	if err := s.store.Save(r.Context(), layout); err != nil {
		writeError(w, oserrors.Wrap(oserrors.ErrCodeInternal, err, "save layout"))
		return
	}
	writeJSON(w, http.StatusCreated, layout)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	layout, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, oserrors.New(oserrors.ErrCodeLayoutNotFound, "layout %s not found", id))
		return
	}
	if err != nil {
		writeError(w, oserrors.Wrap(oserrors.ErrCodeInternal, err, "get layout"))
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, oserrors.New(oserrors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	layouts, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, oserrors.Wrap(oserrors.ErrCodeInternal, err, "list layouts"))
		return
	}
	if layouts == nil {
		layouts = []store.SavedLayout{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": layouts})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, oserrors.New(oserrors.ErrCodeLayoutNotFound, "layout %s not found", id))
		return
	}
	if err != nil {
		writeError(w, oserrors.Wrap(oserrors.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody parses a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return oserrors.Wrap(oserrors.ErrCodeInvalidInput, err, "parse request body")
	}
	return nil
}

// errorResponse is the error envelope every failed request returns.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps coded errors onto HTTP statuses and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	code := oserrors.GetCode(err)
	status := statusForCode(code)
	if code == "" {
		code = oserrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Error: errorBody{Code: string(code), Message: oserrors.UserMessage(err)},
	})
}

func statusForCode(code oserrors.Code) int {
	switch code {
	case oserrors.ErrCodeInvalidInput,
		oserrors.ErrCodeInvalidConfig,
		oserrors.ErrCodeInvalidSection,
		oserrors.ErrCodeInvalidStrategy,
		oserrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case oserrors.ErrCodeNotFound,
		oserrors.ErrCodeLayoutNotFound,
		oserrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case oserrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
