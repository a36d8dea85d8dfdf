package store

import (
	"context"

	"voice-booking-webhook/internal/model"
)

// SlotTaken reports whether any appointment sits at exactly this slot.
// at is passed as text and parsed by Postgres.
func (s *Store) SlotTaken(ctx context.Context, at string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE appointment_time = $1)`, at,
	).Scan(&exists)
	return exists, err
}

// CreateAppointment inserts without any uniqueness check of its own.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (patient_name, phone_number, issue_description, appointment_time, status)
		 VALUES ($1,$2,$3,$4,$5)`,
		a.PatientName, a.PhoneNumber, a.IssueDescription, a.AppointmentTime, a.Status,
	)
	return err
}
