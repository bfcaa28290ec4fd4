package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/llm"
)

const maxBodyBytes = 64 << 10

type generateErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, "Method Not Allowed")
		return
	}

	// Decoding into a map lets a non-string testType be told apart from a
	// malformed body.
	var body map[string]any
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "Request body must be a JSON object.")
		return
	}

	raw, ok := body["testType"].(string)
	if !ok || raw == "" {
		writeErr(w, http.StatusBadRequest, (&exam.InvalidTestTypeError{Missing: true}).Error())
		return
	}

	tt, err := exam.ParseTestType(raw)
	if err != nil {
		s.metrics.generations.WithLabelValues("unknown", "invalid").Inc()
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	reqID := middleware.GetReqID(r.Context())
	ctx := llm.WithRequestID(r.Context(), reqID)

	start := time.Now()
	content, err := s.gen.Generate(ctx, tt)
	elapsed := time.Since(start)

	if err != nil {
		var invalid *exam.InvalidTestTypeError
		if errors.As(err, &invalid) {
			s.metrics.generations.WithLabelValues(tt.Slug(), "invalid").Inc()
			writeErr(w, http.StatusBadRequest, invalid.Error())
			return
		}

		s.metrics.generations.WithLabelValues(tt.Slug(), "failed").Inc()
		s.metrics.genDuration.WithLabelValues(tt.Slug()).Observe(elapsed.Seconds())
		s.logger.Error("generation failed",
			zap.String("request_id", reqID),
			zap.String("test_type", tt.Slug()),
			zap.Error(err))

		details := err.Error()
		var gen *exam.GenerationFailedError
		if errors.As(err, &gen) {
			details = gen.Detail
		}
		writeJSON(w, http.StatusInternalServerError, generateErrorBody{
			Error:   "Failed to generate test content.",
			Details: details,
		})
		return
	}

	s.metrics.generations.WithLabelValues(tt.Slug(), "ok").Inc()
	s.metrics.genDuration.WithLabelValues(tt.Slug()).Observe(elapsed.Seconds())
	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.cfg.Version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, generateErrorBody{Error: msg})
}
