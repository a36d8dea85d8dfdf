package handler

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"voice-booking-webhook/internal/scheduling"
)

type Scheduler interface {
	CheckAvailability(ctx context.Context, args scheduling.Args) scheduling.Availability
	BookAppointment(ctx context.Context, args scheduling.Args) (scheduling.Booking, error)
}

type WebCallCreator interface {
	CreateWebCall(ctx context.Context) (json.RawMessage, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the voice platform webhooks. db may be nil when no
// database is configured.
type Handler struct {
	sched      Scheduler
	calls      WebCallCreator
	db         Pinger
	log        *zap.Logger
	errLogPath string
	errLogMu   sync.Mutex // serialises crash log writes
}

func New(sched Scheduler, calls WebCallCreator, db Pinger, log *zap.Logger, errLogPath string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sched: sched, calls: calls, db: db, log: log, errLogPath: errLogPath}
}

var functionCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_function_calls_total",
		Help: "Function calls received from voice platforms",
	},
	[]string{"platform", "function"},
)

var unknownFunction = map[string]string{"error": "Unknown function"}

// dispatch runs the named operation. Both camelCase (Vapi tools) and
// snake_case (Retell functions) names are accepted.
func (h *Handler) dispatch(ctx context.Context, platform, name string, args scheduling.Args) (any, error) {
	switch name {
	case "checkAvailability", "check_availability":
		functionCalls.WithLabelValues(platform, "check_availability").Inc()
		return h.sched.CheckAvailability(ctx, args), nil
	case "bookAppointment", "book_appointment":
		functionCalls.WithLabelValues(platform, "book_appointment").Inc()
		b, err := h.sched.BookAppointment(ctx, args)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	functionCalls.WithLabelValues(platform, "unknown").Inc()
	h.log.Warn("unknown function", zap.String("platform", platform), zap.String("name", name))
	return unknownFunction, nil
}
