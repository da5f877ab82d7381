package http

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
	"hei-calculator/service"
)

type SensitivityHandler struct {
	service        *service.SensitivityService
	defaultHorizon int
	log            *logrus.Logger
}

func NewSensitivityHandler(service *service.SensitivityService, defaultHorizon int, log *logrus.Logger) *SensitivityHandler {
	return &SensitivityHandler{service: service, defaultHorizon: defaultHorizon, log: log}
}

// SensitivityRequest is the POST body. An omitted horizon_years takes the
// configured default.
type SensitivityRequest struct {
	Terms        domain.ContractTerms `json:"terms"`
	HorizonYears *int                 `json:"horizon_years,omitempty"`
	FromRate     float64              `json:"from_rate"`
	ToRate       float64              `json:"to_rate"`
	Step         float64              `json:"step"`
}

func (req SensitivityRequest) input(defaultHorizon int) domain.SensitivityInput {
	horizon := defaultHorizon
	if req.HorizonYears != nil {
		horizon = *req.HorizonYears
	}
	return domain.SensitivityInput{
		Terms:        req.Terms,
		HorizonYears: horizon,
		FromRate:     req.FromRate,
		ToRate:       req.ToRate,
		Step:         req.Step,
	}
}

// Sweep handles POST /hei/sensitivity.
func (h *SensitivityHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.log)

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, log, http.StatusUnsupportedMediaType, errorResponse{Error: "Content-Type must be application/json"})
		return
	}

	var req SensitivityRequest
	if err := decodeJSON(r, &req); err != nil {
		log.WithError(err).Debug("error decoding request body")
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.Sweep(r.Context(), req.input(h.defaultHorizon))
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, result)
}
