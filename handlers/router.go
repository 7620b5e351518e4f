package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ferreirogomes/resgate/services"
)

// NewRouter registra todas as rotas da API.
func NewRouter(service *services.RedemptionService) chi.Router {
	poolHandler := NewPoolHandler(service)
	redemptionHandler := NewRedemptionHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/pools", func(r chi.Router) {
		r.Post("/", poolHandler.CreatePool)
		r.Get("/{id}", poolHandler.GetPoolByID)
		r.Post("/{id}/tokens", poolHandler.AddReserveToken)
		r.Get("/{id}/tokens", poolHandler.GetReserveTokens)
	})

	r.Route("/redemptions", func(r chi.Router) {
		r.Post("/quote", redemptionHandler.Quote)
		r.Post("/prepare", redemptionHandler.PrepareRedemption)
		r.Post("/complete", redemptionHandler.CompleteRedemption)
		r.Get("/{id}", redemptionHandler.GetRedemptionByID)
	})

	return r
}
