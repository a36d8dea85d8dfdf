package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"voice-booking-webhook/internal/model"
	"voice-booking-webhook/internal/timeparse"
)

// Store is the slice of persistence the scheduler needs.
type Store interface {
	SlotTaken(ctx context.Context, at string) (bool, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
}

// Broadcaster pushes an event to realtime subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, event string, payload any) error
}

// Business hours, [OpenHour, CloseHour).
const (
	OpenHour  = 9
	CloseHour = 17
)

// Service implements availability checks and bookings. A nil store is
// allowed and makes every operation answer "Database connection failed".
type Service struct {
	store Store
	bc    Broadcaster
	log   *zap.Logger
	now   func() time.Time
}

func New(st Store, bc Broadcaster, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, bc: bc, log: log, now: time.Now}
}

// WithClock overrides the time source used for broadcast ids.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Slot builds the exact-match key stored in appointment_time.
func Slot(date string, c timeparse.Clock) string {
	return date + "T" + c.String() + ":00"
}

func withinBusinessHours(c timeparse.Clock) bool {
	return c.Hour >= OpenHour && c.Hour < CloseHour
}
