package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/kaitou/internal/engine"
	"github.com/hyperjump/kaitou/internal/models"
	"github.com/hyperjump/kaitou/internal/ocr"
)

// maxImageBytes bounds uploaded question images.
const maxImageBytes = 10 << 20

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("ask request", zap.Int("k", req.K))
	result, err := s.engine.Answer(r.Context(), req.Question, req.K)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAskImage(w http.ResponseWriter, r *http.Request) {
	if s.ocr == nil {
		s.respondError(w, http.StatusNotImplemented, "image recognition not configured")
		return
	}
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	k := models.DefaultK
	if v := r.FormValue("k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			k = n
		}
	}

	text, err := s.ocr.RecognizeImage(r.Context(), image)
	if err != nil {
		s.logger.Error("image recognition failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	question := ocr.CleanQuestionText(text)
	if question == "" {
		s.respondError(w, http.StatusBadRequest, "no text extracted from image")
		return
	}
	s.logger.Debug("image question recognized", zap.String("question", question))

	result, err := s.engine.Answer(r.Context(), question, k)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type ingestRequest struct {
	Records []models.QARecord `json:"records"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := s.engine.Ingest(r.Context(), req.Records)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	if s.persist != nil {
		if err := s.persist(r.Context(), snap); err != nil {
			s.logger.Error("snapshot persist failed", zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ingested",
		"count":  snap.Store.Len(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	count, err := s.reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reloaded",
		"count":  count,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"ready":       s.engine.Ready(),
		"corpus_size": s.engine.Size(),
	}
	if snap := s.engine.Snapshot(); snap != nil {
		resp["snapshot_id"] = snap.ID
		resp["built_at"] = snap.BuiltAt
		resp["dimensions"] = snap.Index.Dimensions()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondEngineError maps engine error kinds to HTTP status codes.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNoData):
		s.respondError(w, http.StatusNotFound, "No data available. Please load the question corpus first.")
	case errors.Is(err, engine.ErrInvalidArgument):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrEmbedding), errors.Is(err, engine.ErrCompletion):
		s.logger.Error("provider call failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
