package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// CreateWebCall relays Retell's create-web-call response verbatim.
func (h *Handler) CreateWebCall(w http.ResponseWriter, r *http.Request) {
	if h.calls == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "web calls are not configured"})
		return
	}
	out, err := h.calls.CreateWebCall(r.Context())
	if err != nil {
		h.log.Error("create web call failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	db := "disabled"
	if h.db != nil {
		db = "up"
		if err := h.db.Ping(r.Context()); err != nil {
			h.log.Warn("health: database ping failed", zap.Error(err))
			db = "down"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": db})
}
