package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
	"hei-calculator/service"
)

type SettlementHandler struct {
	service *service.SettlementService
	log     *logrus.Logger
}

func NewSettlementHandler(service *service.SettlementService, log *logrus.Logger) *SettlementHandler {
	return &SettlementHandler{service: service, log: log}
}

// QuoteSettlement handles POST /hei/settlement.
func (h *SettlementHandler) QuoteSettlement(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.log)

	var req domain.SettlementInput
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.service.Quote(r.Context(), req)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, quote)
}
