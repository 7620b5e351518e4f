package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ferreirogomes/resgate/redemption"
	"github.com/ferreirogomes/resgate/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Falha ao codificar resposta: %v", err)
	}
}

// writeError traduz os erros do serviço para status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, redemption.ErrNothingToRedeem), errors.Is(err, services.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Erro interno: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
