package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/pkg/version"
)

// DesignRequest is the body of design and report requests. Zero tuning
// fields fall back to the server defaults; MaxIterations may not exceed
// the server's own cap.
type DesignRequest struct {
	sizing.Input
	MaxIterations int     `json:"max_iterations,omitempty"`
	ScaleStep     float64 `json:"scale_step,omitempty"`
	Trace         bool    `json:"trace,omitempty"`

	Project string `json:"project,omitempty"`
	Author  string `json:"author,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v before writing the header so that values JSON cannot
// represent (infinite dimensions from q_allow = 0) become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: "result cannot be encoded as JSON: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decode reads a DesignRequest and sizes it. It writes the error response
// itself and returns ok=false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*DesignRequest, *sizing.Result, bool) {
	var req DesignRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return nil, nil, false
	}

	engine := s.engine.Load()
	if req.MaxIterations > engine.maxIterations {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("max_iterations must not exceed %d", engine.maxIterations))
		return nil, nil, false
	}

	opts := []sizing.Option{
		sizing.WithMaxIterations(engine.maxIterations),
		sizing.WithScaleStep(engine.scaleStep),
	}
	if req.MaxIterations != 0 {
		opts = append(opts, sizing.WithMaxIterations(req.MaxIterations))
	}
	if req.ScaleStep != 0 {
		opts = append(opts, sizing.WithScaleStep(req.ScaleStep))
	}
	if req.Trace {
		opts = append(opts, sizing.WithTrace())
	}

	res, err := sizing.Design(req.Input, opts...)
	if err != nil {
		if errors.Is(err, sizing.ErrInvalidLoad) || errors.Is(err, sizing.ErrInvalidOption) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, nil, false
		}
		s.logger.Error("design failed", "error", err)
		writeError(w, http.StatusInternalServerError, "design failed")
		return nil, nil, false
	}
	return &req, res, true
}

func (s *Server) handleDesign(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.logger.Debug("design computed",
		slog.Float64("p_kn", res.Input.AxialLoad),
		slog.String("status", string(res.Status)),
		slog.Int("iterations", res.Iterations),
	)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lang := s.opts.Language
	if tag := r.URL.Query().Get("lang"); tag != "" {
		lang = report.ParseLanguage(tag)
	}

	req, res, ok := s.decode(w, r)
	if !ok {
		return
	}
	meta := report.Meta{Project: req.Project, Author: req.Author, Date: s.now()}
	data, err := report.Encode(format, res, meta, lang)
	if err != nil {
		s.logger.Error("report rendering failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == report.PDFFormat {
		w.Header().Set("Content-Disposition", `attachment; filename="footing-report.pdf"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
		"time":    s.now().UTC().Format(time.RFC3339),
	})
}
