package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Router(mw ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw...)

	r.HandleFunc("/vapi-webhook", h.Vapi).Methods(http.MethodPost)
	r.HandleFunc("/retell-webhook", h.Retell).Methods(http.MethodPost)
	// standalone variant does its own method handling
	r.HandleFunc("/api/retell-webhook", h.RetellStandalone)
	r.HandleFunc("/api/create-web-call", h.CreateWebCall).Methods(http.MethodGet)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}
