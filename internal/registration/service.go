// Package registration contains handlers, services and structures used to
// register patient arrivals and track visits at the front desk.
package registration

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-desk/internal/database"
)

// Registrar determines the methods available to register arrivals.
type Registrar interface {

	// RegisterVisit registers a patient arrival: it finds the patient by
	// phone or creates one, opens a waiting visit and, when the arrival
	// honours a booking, marks that appointment as arrived. The three
	// writes commit together or not at all.
	RegisterVisit(ctx context.Context, registration RegistrationRequest) (*RegistrationResult, error)
}

// Reader determines the methods available to read visits and patients.
type Reader interface {

	// GetVisits returns the visits of a calendar date, optionally filtered
	// by status, newest first.
	GetVisits(ctx context.Context, date string, status string) ([]*VisitSummary, error)

	// GetPatientHistory returns the patient record and every visit ever
	// recorded for them.
	GetPatientHistory(ctx context.Context, patientID int64) (*PatientHistory, error)

	// SearchPatients searches patients by name, phone or id card fragment.
	SearchPatients(ctx context.Context, keyword string) ([]*PatientSummary, error)
}

// Service determines the methods used to manage visit registration.
type Service interface {
	Registrar
	Reader
}

type defaultService struct {
	repository Repository
	dbConn     database.Connection
}

// NewService creates a new registration service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{
		dbConn:     dbConn,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) RegisterVisit(ctx context.Context, registration RegistrationRequest) (*RegistrationResult, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}
	var visitID int64
	err := database.WithinTransaction(ctx, d.dbConn, func(ctx context.Context, tx *sql.Tx) error {
		patient, err := d.repository.FindPatientByPhone(ctx, tx, registration.Phone)
		if err != nil {
			return err
		}
		var patientID int64
		if patient == nil {
			patientID, err = d.repository.InsertPatient(ctx, tx, Patient{
				Name:   registration.PatientName,
				Gender: registration.Gender,
				IDCard: registration.IDCard,
				Phone:  registration.Phone,
			})
			if err != nil {
				return err
			}
		} else {
			patientID = patient.ID
		}
		visitID, err = d.repository.InsertVisit(ctx, tx, patientID, registration.DeptID, registration.RoomID, registration.DoctorID)
		if err != nil {
			return err
		}
		if registration.ApptID != nil {
			if err = d.repository.MarkAppointmentArrived(ctx, tx, *registration.ApptID, patientID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &RegistrationResult{VisitID: visitID}, nil
}

func (d defaultService) GetVisits(ctx context.Context, date string, status string) ([]*VisitSummary, error) {
	if !validDate(date) {
		return nil, ErrInvalidDateReference
	}
	visits, err := d.repository.ListVisits(ctx, date, status)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return visits, nil
}

func (d defaultService) GetPatientHistory(ctx context.Context, patientID int64) (*PatientHistory, error) {
	patient, err := d.repository.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	visits, err := d.repository.ListPatientVisits(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &PatientHistory{Patient: patient, Visits: visits}, nil
}

func (d defaultService) SearchPatients(ctx context.Context, keyword string) ([]*PatientSummary, error) {
	patients, err := d.repository.SearchPatients(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return patients, nil
}
