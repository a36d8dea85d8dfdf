package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"voice-booking-webhook/internal/model"
	"voice-booking-webhook/internal/realtime"
	"voice-booking-webhook/internal/timeparse"
)

const (
	DefaultName  = "Unknown"
	DefaultPhone = "Unknown"
	DefaultIssue = "General Consultation"

	msgNeedBookingDateTime = "I need a specific date and time to book."
	msgSaveFailed          = "Failed to save appointment"
)

type Booking struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BookAppointment broadcasts and then inserts. It does not re-check
// availability or business hours. A broadcast failure is returned as an
// error; everything else comes back as a Booking.
func (s *Service) BookAppointment(ctx context.Context, args Args) (Booking, error) {
	if s.store == nil {
		return Booking{Message: reasonNoDatabase}, nil
	}

	date := args.First(DateKeys...)
	raw := args.firstRaw(TimeKeys...)
	if date == "" || raw == "" {
		return Booking{Message: msgNeedBookingDateTime}, nil
	}

	apt := &model.Appointment{
		PatientName:      args.firstOr(DefaultName, NameKeys...),
		PhoneNumber:      args.firstOr(DefaultPhone, PhoneKeys...),
		IssueDescription: args.firstOr(DefaultIssue, IssueKeys...),
		AppointmentTime:  Slot(date, timeparse.Normalize(raw)),
		Status:           model.StatusConfirmed,
	}

	if s.bc != nil {
		ev := model.BroadcastEvent{ID: s.now().UnixMilli(), Appointment: *apt}
		if err := s.bc.Broadcast(ctx, realtime.EventNewBooking, ev); err != nil {
			return Booking{}, fmt.Errorf("broadcast booking: %w", err)
		}
	}

	if err := s.store.CreateAppointment(ctx, apt); err != nil {
		s.log.Error("insert appointment failed",
			zap.String("slot", apt.AppointmentTime), zap.Error(err))
		return Booking{Message: msgSaveFailed}, nil
	}

	s.log.Info("appointment booked",
		zap.String("slot", apt.AppointmentTime), zap.String("patient", apt.PatientName))
	return Booking{Success: true, Message: "Booked for " + raw}, nil
}
