package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/resgate/services"
)

// RedemptionHandler lida com cotações e resgates.
type RedemptionHandler struct {
	Service *services.RedemptionService
}

// NewRedemptionHandler cria uma nova instância do handler de resgates.
func NewRedemptionHandler(s *services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{Service: s}
}

// Quote calcula os pagamentos para a posição do slider ou valor digitado.
// POST /redemptions/quote
func (h *RedemptionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req services.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := h.Service.Quote(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// PrepareRedemption prepara a transação de queima para assinatura do detentor.
// POST /redemptions/prepare
func (h *RedemptionHandler) PrepareRedemption(w http.ResponseWriter, r *http.Request) {
	var req services.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prepared, err := h.Service.PrepareRedemption(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prepared)
}

// CompleteRedemption envia a transação assinada para a Solana.
// POST /redemptions/complete
func (h *RedemptionHandler) CompleteRedemption(w http.ResponseWriter, r *http.Request) {
	var req services.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	redemption, err := h.Service.CompleteRedemption(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, redemption)
}

// GetRedemptionByID obtém um resgate pelo ID.
// GET /redemptions/{id}
func (h *RedemptionHandler) GetRedemptionByID(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.Service.GetRedemption(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redemption)
}
