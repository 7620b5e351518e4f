package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/resgate/services"
)

// PoolHandler lida com requisições HTTP relacionadas a pools e reservas.
type PoolHandler struct {
	Service *services.RedemptionService
}

// NewPoolHandler cria uma nova instância do handler de pools.
func NewPoolHandler(s *services.RedemptionService) *PoolHandler {
	return &PoolHandler{Service: s}
}

// CreatePool cadastra um token resgatável.
// POST /pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Symbol      string `json:"symbol"`
		Name        string `json:"name"`
		MintAddress string `json:"mint_address"`
		Decimals    int    `json:"decimals"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pool, err := h.Service.CreatePool(requestBody.Symbol, requestBody.Name, requestBody.MintAddress, requestBody.Decimals)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pool)
}

// GetPoolByID obtém um pool pelo ID.
// GET /pools/{id}
func (h *PoolHandler) GetPoolByID(w http.ResponseWriter, r *http.Request) {
	pool, err := h.Service.GetPool(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// AddReserveToken cadastra um token de reserva no pool.
// POST /pools/{id}/tokens
func (h *PoolHandler) AddReserveToken(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Symbol       string `json:"symbol"`
		MintAddress  string `json:"mint_address"`
		VaultAddress string `json:"vault_address"`
		Decimals     int    `json:"decimals"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.Service.AddReserveToken(r.Context(), chi.URLParam(r, "id"),
		requestBody.Symbol, requestBody.MintAddress, requestBody.VaultAddress, requestBody.Decimals)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, token)
}

// GetReserveTokens lista os tokens de reserva do pool.
// GET /pools/{id}/tokens
func (h *PoolHandler) GetReserveTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.Service.GetReserveTokens(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}
