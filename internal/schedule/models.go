package schedule

import (
	"time"

	"clinic-desk/internal/apierrors"
)

const defaultMaxPatients = 30

// ScheduleRequest carries the fields needed to publish a doctor shift.
type ScheduleRequest struct {
	DoctorID    int64  `json:"doctor_id"`
	RoomID      int64  `json:"room_id"`
	WorkDate    string `json:"work_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxPatients *int64 `json:"max_patients,omitempty"`
}

// Validate checks if the given schedule request is valid.
func (r ScheduleRequest) Validate() error {
	if r.DoctorID == 0 {
		return apierrors.NewValidationError("doctor_id", "required")
	}
	if r.RoomID == 0 {
		return apierrors.NewValidationError("room_id", "required")
	}
	if _, err := time.Parse("2006-01-02", r.WorkDate); err != nil {
		return apierrors.NewValidationError("work_date", "invalid date reference - e.g. 2026-01-10")
	}
	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return apierrors.NewValidationError("start_time", "invalid time reference - e.g. 08:30")
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return apierrors.NewValidationError("end_time", "invalid time reference - e.g. 12:00")
	}
	if !end.After(start) {
		return apierrors.NewValidationError("end_time", "must be after the start time")
	}
	if r.MaxPatients != nil && *r.MaxPatients <= 0 {
		return apierrors.NewValidationError("max_patients", "must be greater than zero")
	}
	return nil
}

// maxPatients resolves the configured ceiling, falling back to the default.
func (r ScheduleRequest) maxPatients() int64 {
	if r.MaxPatients != nil {
		return *r.MaxPatients
	}
	return defaultMaxPatients
}

// ScheduleResult carries the identifier of a created schedule slot.
type ScheduleResult struct {
	ScheduleID int64 `json:"schedule_id"`
}

// Schedule is a published shift joined with its display names.
type Schedule struct {
	ScheduleID      int64   `json:"schedule_id" dbfield:"schedule_id"`
	DoctorName      string  `json:"doctor_name" dbfield:"doctor_name"`
	Title           *string `json:"title" dbfield:"title"`
	DeptName        string  `json:"dept_name" dbfield:"dept_name"`
	RoomName        string  `json:"room_name" dbfield:"room_name"`
	WorkDate        string  `json:"work_date" dbfield:"work_date"`
	StartTime       string  `json:"start_time" dbfield:"start_time"`
	EndTime         string  `json:"end_time" dbfield:"end_time"`
	MaxPatients     int64   `json:"max_patients" dbfield:"max_patients"`
	CurrentPatients int64   `json:"current_patients" dbfield:"current_patients"`
}
