// Package server exposes the encoding pipeline over HTTP.
//
// Endpoints:
//
//	POST /api/encode        encode a JSON flowsheet, optionally render it
//	GET  /api/records       list archived encodings (requires a store)
//	GET  /api/records/{id}  fetch one archived encoding
//	GET  /healthz           liveness probe
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sfileserrors "github.com/shikhar5647/sfiles/pkg/errors"
	"github.com/shikhar5647/sfiles/pkg/flowsheet"
	sfilesio "github.com/shikhar5647/sfiles/pkg/io"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
	"github.com/shikhar5647/sfiles/pkg/store"
)

// Server handles HTTP encode requests.
type Server struct {
	runner  *pipeline.Runner
	archive store.Store // optional; nil disables the records endpoints
	logger  *log.Logger
}

// New creates a server. archive may be nil to disable archiving.
func New(runner *pipeline.Runner, archive store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, archive: archive, logger: logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		if s.archive != nil {
			r.Get("/records", s.handleListRecords)
			r.Get("/records/{id}", s.handleGetRecord)
		}
	})
	return r
}

// encodeRequest is the POST /api/encode body. The flowsheet field uses the
// same JSON shape as the CLI input files.
type encodeRequest struct {
	Name      string          `json:"name,omitempty"`
	Flowsheet json.RawMessage `json:"flowsheet"`
	Formats   []string        `json:"formats,omitempty"`
	Detailed  bool            `json:"detailed,omitempty"`
	Archive   bool            `json:"archive,omitempty"`
}

// encodeResponse is the POST /api/encode response. Artifact bytes are
// base64-encoded by encoding/json.
type encodeResponse struct {
	ID        string            `json:"id,omitempty"`
	Notation  string            `json:"notation"`
	SheetHash string            `json:"sheet_hash"`
	Units     int               `json:"units"`
	Streams   int               `json:"streams"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
}

type errorResponse struct {
	Code    sfileserrors.Code `json:"code"`
	Message string            `json:"message"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if len(req.Flowsheet) == 0 {
		s.writeError(w, sfileserrors.New(sfileserrors.ErrCodeInvalidInput, "flowsheet is required"))
		return
	}

	fs, err := sfilesio.ReadJSON(bytes.NewReader(req.Flowsheet))
	if err != nil {
		s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeInvalidFlowsheet, err, "invalid flowsheet"))
		return
	}

	opts := pipeline.Options{
		Name:     req.Name,
		Formats:  req.Formats,
		Detailed: req.Detailed,
		Logger:   s.logger,
	}
	result, err := s.runner.Execute(r.Context(), fs, opts)
	if err != nil {
		if errors.Is(err, flowsheet.ErrNoEntryPoint) {
			s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeInvalidFlowsheet, err, "flowsheet has no entry point"))
			return
		}
		s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeInternal, err, "encode failed"))
		return
	}

	resp := encodeResponse{
		Notation:  result.Notation,
		SheetHash: result.SheetHash,
		Units:     result.Stats.UnitCount,
		Streams:   result.Stats.StreamCount,
		Artifacts: result.Artifacts,
	}

	if req.Archive && s.archive != nil {
		rec := store.NewRecord(opts.Name, result.SheetHash, result.Notation,
			result.Stats.UnitCount, result.Stats.StreamCount)
		if err := s.archive.Save(r.Context(), rec); err != nil {
			s.logger.Error("archive record", "err", err)
		} else {
			resp.ID = rec.ID
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.archive.List(r.Context(), 50)
	if err != nil {
		s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeStorage, err, "list records"))
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.archive.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, sfileserrors.New(sfileserrors.ErrCodeNotFound, "record %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, sfileserrors.Wrap(sfileserrors.ErrCodeStorage, err, "get record %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err *sfileserrors.Error) {
	status := statusFor(err.Code)
	if status >= 500 {
		s.logger.Error("request failed", "code", err.Code, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Code: err.Code, Message: sfileserrors.UserMessage(err)})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code sfileserrors.Code) int {
	switch code {
	case sfileserrors.ErrCodeInvalidInput,
		sfileserrors.ErrCodeInvalidFlowsheet,
		sfileserrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case sfileserrors.ErrCodeNotFound, sfileserrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
