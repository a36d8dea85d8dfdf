package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type retellRequest struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Retell runs the named function and replies with its result as-is.
// Failures are also dumped to the crash log.
func (h *Handler) Retell(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPanic(w, r, true)

	var req retellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("decode retell body: %w", err), true, nil)
		return
	}
	args, err := decodeArgs(req.Args)
	if err != nil {
		h.fail(w, r, err, true, nil)
		return
	}

	result, err := h.dispatch(r.Context(), "retell", req.Name, args)
	if err != nil {
		h.fail(w, r, err, true, nil)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RetellStandalone is Retell behind its own CORS and method handling, for
// deployments where it is called straight from a browser or edge function.
func (h *Handler) RetellStandalone(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "86400")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}
	h.Retell(w, r)
}
