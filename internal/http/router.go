package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/ledger-search/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/transactions", func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Use(AuthMiddleware)
		r.Get("/search", handlers.SearchTransactionsHandler)
		r.Get("/search/job/{jobId}", handlers.SearchJobHandler)
	})
	return r
}
