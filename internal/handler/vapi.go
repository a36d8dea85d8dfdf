package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const vapiToolCalls = "tool-calls"

type vapiRequest struct {
	Message struct {
		Type      string         `json:"type"`
		ToolCalls []vapiToolCall `json:"toolCalls"`
	} `json:"message"`
}

type vapiToolCall struct {
	ID       string `json:"id"`
	Function struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

type vapiResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"` // JSON-encoded operation result
}

type vapiResponse struct {
	Results []vapiResult `json:"results"`
}

// Vapi answers the first tool call of a tool-calls message. Other message
// types (status updates, transcripts, ...) are acknowledged and ignored.
func (h *Handler) Vapi(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPanic(w, r, false)

	var req vapiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("decode vapi body: %w", err), false, nil)
		return
	}

	if req.Message.Type != vapiToolCalls {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(http.StatusText(http.StatusOK)))
		return
	}
	if len(req.Message.ToolCalls) == 0 {
		h.fail(w, r, errors.New("tool-calls message without toolCalls"), false, nil)
		return
	}

	call := req.Message.ToolCalls[0]
	args, err := decodeArgs(call.Function.Arguments)
	if err != nil {
		h.fail(w, r, err, false, nil)
		return
	}

	result, err := h.dispatch(r.Context(), "vapi", call.Function.Name, args)
	if err != nil {
		h.fail(w, r, err, false, nil)
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		h.fail(w, r, err, false, nil)
		return
	}

	writeJSON(w, http.StatusOK, vapiResponse{
		Results: []vapiResult{{ToolCallID: call.ID, Result: string(encoded)}},
	})
}
