package scheduling

import (
	"context"

	"go.uber.org/zap"

	"voice-booking-webhook/internal/timeparse"
)

const (
	msgNeedDateTime  = "I need a specific date and time to check."
	reasonOffHours   = "Outside of business hours (09:00 - 17:00)"
	reasonNoDatabase = "Database connection failed"
	reasonDBError    = "Database error"
	reasonTaken      = "Slot is already taken."
)

// Availability is returned to the voice agent as-is. Rejections and store
// failures share this shape.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (s *Service) CheckAvailability(ctx context.Context, args Args) Availability {
	date := args.First(DateKeys...)
	raw := args.First(TimeKeys...)
	if date == "" || raw == "" {
		return Availability{Message: msgNeedDateTime}
	}

	clock := timeparse.Normalize(raw)
	if !withinBusinessHours(clock) {
		return Availability{Reason: reasonOffHours}
	}

	if s.store == nil {
		return Availability{Reason: reasonNoDatabase}
	}

	slot := Slot(date, clock)
	taken, err := s.store.SlotTaken(ctx, slot)
	if err != nil {
		s.log.Error("availability query failed", zap.String("slot", slot), zap.Error(err))
		return Availability{Reason: reasonDBError}
	}
	if taken {
		return Availability{Reason: reasonTaken}
	}
	return Availability{Available: true}
}
