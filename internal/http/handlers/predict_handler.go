package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"fatiguelens/internal/normalizer"
	"fatiguelens/internal/scoring"
	"fatiguelens/internal/service"
)

// PredictHandler serves the inference endpoint. POST runs the pipeline; GET
// returns the last-result snapshot.
type PredictHandler struct {
	svc    *service.PredictionService
	logger *zap.Logger
}

// NewPredictHandler builds handler.
func NewPredictHandler(svc *service.PredictionService, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{
		svc:    svc,
		logger: logger,
	}
}

// Handle dispatches POST /predict and GET /predict.
func (h *PredictHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.predict(w, r)
	case http.MethodGet:
		h.latest(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *PredictHandler) predict(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Request must be JSON")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rec, fieldErrs := normalizer.Normalize(payload)
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, fieldErrs)
		return
	}

	prediction, err := h.svc.Predict(r.Context(), rec)
	if err != nil {
		if errors.Is(err, scoring.ErrUnavailable) {
			h.logger.Error("scoring oracle unavailable", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "prediction service unavailable")
			return
		}
		h.logger.Error("prediction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

func (h *PredictHandler) latest(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.svc.Latest(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no prediction available")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func isJSON(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
