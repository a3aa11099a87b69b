package appointment

import (
	"time"

	"clinic-desk/internal/apierrors"
)

// Appointment statuses. A booking only moves forward: pending arrival to
// arrived, or pending arrival to cancelled.
const (
	StatusPendingArrival = "pending_arrival"
	StatusArrived        = "arrived"
	StatusCancelled      = "cancelled"
)

// Appointment is a pre-visit booking. The patient reference is optional and
// only filled once a registration matches the booking by phone.
type Appointment struct {
	ID          int64   `json:"appt_id" dbfield:"appt_id"`
	PatientName string  `json:"patient_name" dbfield:"patient_name"`
	Phone       string  `json:"phone" dbfield:"phone"`
	DeptName    string  `json:"dept_name" dbfield:"dept_name"`
	ApptDate    string  `json:"appt_date" dbfield:"appt_date"`
	ApptTime    string  `json:"appt_time" dbfield:"appt_time"`
	Status      string  `json:"status" dbfield:"status"`
	CreatedAt   *string `json:"created_at" dbfield:"created_at"`
}

// BookingRequest carries the fields needed to create an appointment.
type BookingRequest struct {
	PatientName string `json:"patient_name"`
	Phone       string `json:"phone"`
	DeptID      int64  `json:"dept_id"`
	DoctorID    *int64 `json:"doctor_id,omitempty"`
	ApptDate    string `json:"appt_date"`
	ApptTime    string `json:"appt_time"`
}

// Validate checks if the given booking request is valid.
func (b BookingRequest) Validate() error {
	if b.PatientName == "" {
		return apierrors.NewValidationError("patient_name", "required")
	}
	if b.Phone == "" {
		return apierrors.NewValidationError("phone", "required")
	}
	if b.DeptID == 0 {
		return apierrors.NewValidationError("dept_id", "required")
	}
	if b.ApptDate == "" {
		return apierrors.NewValidationError("appt_date", "required")
	}
	if _, err := time.Parse("2006-01-02", b.ApptDate); err != nil {
		return apierrors.NewValidationError("appt_date", "invalid date - e.g. 2026-01-10")
	}
	if b.ApptTime == "" {
		return apierrors.NewValidationError("appt_time", "required")
	}
	if _, err := time.Parse("15:04", b.ApptTime); err != nil {
		return apierrors.NewValidationError("appt_time", "invalid time - e.g. 09:00")
	}
	return nil
}

// BookingResult carries the identifier of a created appointment.
type BookingResult struct {
	ApptID int64 `json:"appt_id"`
}
