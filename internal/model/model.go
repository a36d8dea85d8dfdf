package model

const StatusConfirmed = "confirmed"

type Appointment struct {
	PatientName      string `json:"patient_name"`
	PhoneNumber      string `json:"phone_number"`
	IssueDescription string `json:"issue_description"`
	AppointmentTime  string `json:"appointment_time"` // {date}T{HH}:{mm}:00, no zone
	Status           string `json:"status"`
}

// BroadcastEvent is what realtime subscribers receive for a new booking.
// ID is synthetic (unix millis) and never stored.
type BroadcastEvent struct {
	ID int64 `json:"id"`
	Appointment
}
