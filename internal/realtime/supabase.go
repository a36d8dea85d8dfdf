package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Supabase sends broadcast messages through the Realtime REST endpoint,
// so no websocket has to be held open.
type Supabase struct {
	url     string
	key     string
	channel string
	client  *http.Client
	log     *zap.Logger
}

func NewSupabase(projectURL, key, channel string, log *zap.Logger) *Supabase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Supabase{
		url:     strings.TrimRight(projectURL, "/") + "/realtime/v1/api/broadcast",
		key:     key,
		channel: channel,
		client:  http.DefaultClient,
		log:     log,
	}
}

// Broadcast only fails when the request cannot be sent. A delivered but
// rejected message is logged and counts as sent.

func (s *Supabase) Broadcast(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(struct {
		Messages []Envelope `json:"messages"`
	}{
		Messages: []Envelope{{Topic: s.channel, Event: event, Payload: payload}},
	})
	if err != nil {
		return fmt.Errorf("broadcast encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.log.Warn("broadcast rejected",
			zap.String("channel", s.channel),
			zap.String("event", event),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", bytes.TrimSpace(msg)),
		)
	}
	return nil
}
