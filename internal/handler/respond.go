package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"voice-booking-webhook/internal/middleware"
	"voice-booking-webhook/internal/scheduling"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// decodeArgs accepts arguments either as a JSON object or as a string
// holding one.
func decodeArgs(raw json.RawMessage) (scheduling.Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return scheduling.Args{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode arguments: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return scheduling.Args{}, nil
		}
		raw = []byte(s)
	}

	var args scheduling.Args
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	if args == nil {
		args = scheduling.Args{}
	}
	return args, nil
}

// fail is the single failure boundary for webhook handlers.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, dump bool, stack []byte) {
	h.log.Error("webhook failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		zap.Error(err),
	)
	if dump {
		h.dumpError(err, stack)
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

func (h *Handler) recoverPanic(w http.ResponseWriter, r *http.Request, dump bool) {
	if v := recover(); v != nil {
		h.fail(w, r, fmt.Errorf("panic: %v", v), dump, debug.Stack())
	}
}

// dumpError overwrites the crash log in the background. Write errors are
// dropped and the request never waits on it.
func (h *Handler) dumpError(err error, stack []byte) {
	if h.errLogPath == "" {
		return
	}
	if stack == nil {
		stack = debug.Stack()
	}
	entry := fmt.Sprintf("%s %v\n%s\n", time.Now().Format(time.RFC3339), err, stack)
	path := h.errLogPath
	go func() {
		h.errLogMu.Lock()
		defer h.errLogMu.Unlock()
		_ = os.WriteFile(path, []byte(entry), 0o644)
	}()
}
