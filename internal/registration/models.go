package registration

import (
	"time"

	"clinic-desk/internal/apierrors"
)

// Visit statuses. A visit only moves forward: waiting, in progress,
// completed, departed.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDeparted   = "departed"
)

type Patient struct {
	ID     int64   `json:"patient_id" dbfield:"patient_id"`
	Name   string  `json:"patient_name" dbfield:"patient_name"`
	Gender *string `json:"gender" dbfield:"gender"`
	IDCard *string `json:"id_card" dbfield:"id_card"`
	Phone  string  `json:"phone" dbfield:"phone"`
}

// RegistrationRequest carries the fields needed to register an arrival at the
// front desk. The optional appointment reference marks a booked patient; the
// demographic fields are only used when the phone number is unknown.
type RegistrationRequest struct {
	PatientName string  `json:"patient_name"`
	Phone       string  `json:"phone"`
	Gender      *string `json:"gender,omitempty"`
	IDCard      *string `json:"id_card,omitempty"`
	DeptID      int64   `json:"dept_id"`
	RoomID      int64   `json:"room_id"`
	DoctorID    *int64  `json:"doctor_id,omitempty"`
	ApptID      *int64  `json:"appt_id,omitempty"`
}

// Validate checks if the given registration request is valid.
func (r RegistrationRequest) Validate() error {
	if r.PatientName == "" {
		return apierrors.NewValidationError("patient_name", "required")
	}
	if r.Phone == "" {
		return apierrors.NewValidationError("phone", "required")
	}
	if r.DeptID == 0 {
		return apierrors.NewValidationError("dept_id", "required")
	}
	if r.RoomID == 0 {
		return apierrors.NewValidationError("room_id", "required")
	}
	return nil
}

// RegistrationResult carries the identifier of a created visit.
type RegistrationResult struct {
	VisitID int64 `json:"visit_id"`
}

// VisitSummary is a visit row joined with its display names, as shown on the
// reception desk list.
type VisitSummary struct {
	VisitID     int64   `json:"visit_id" dbfield:"visit_id"`
	PatientName string  `json:"patient_name" dbfield:"patient_name"`
	DeptName    string  `json:"dept_name" dbfield:"dept_name"`
	RoomName    string  `json:"room_name" dbfield:"room_name"`
	VisitTime   string  `json:"visit_time" dbfield:"visit_time"`
	Status      string  `json:"status" dbfield:"status"`
	DoctorName  *string `json:"doctor_name" dbfield:"doctor_name"`
}

// VisitRecord is a historical visit of one patient.
type VisitRecord struct {
	VisitID      int64   `json:"visit_id" dbfield:"visit_id"`
	VisitDate    string  `json:"visit_date" dbfield:"visit_date"`
	VisitTime    string  `json:"visit_time" dbfield:"visit_time"`
	DeptName     string  `json:"dept_name" dbfield:"dept_name"`
	RoomName     string  `json:"room_name" dbfield:"room_name"`
	DoctorName   *string `json:"doctor_name" dbfield:"doctor_name"`
	Diagnosis    *string `json:"diagnosis" dbfield:"diagnosis"`
	Prescription *string `json:"prescription" dbfield:"prescription"`
	Status       string  `json:"status" dbfield:"status"`
}

// PatientHistory is a patient record together with every visit ever recorded
// for them, most recent first.
type PatientHistory struct {
	Patient *Patient       `json:"patient"`
	Visits  []*VisitRecord `json:"visits"`
}

// PatientSummary is a patient search hit with visit usage counters.
type PatientSummary struct {
	ID            int64   `json:"patient_id" dbfield:"patient_id"`
	Name          string  `json:"patient_name" dbfield:"patient_name"`
	Gender        *string `json:"gender" dbfield:"gender"`
	Phone         string  `json:"phone" dbfield:"phone"`
	IDCard        *string `json:"id_card" dbfield:"id_card"`
	VisitCount    int64   `json:"visit_count" dbfield:"visit_count"`
	LastVisitDate *string `json:"last_visit_date" dbfield:"last_visit_date"`
}

// validDate reports whether the given value parses as a calendar date.
func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
