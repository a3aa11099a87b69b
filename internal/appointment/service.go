// Package appointment contains handlers, services and structures used to manage
// pre-visit bookings.
package appointment

import (
	"context"
	"fmt"

	"clinic-desk/internal/database"
)

// Writer determines the methods available to create and cancel bookings.
type Writer interface {

	// CreateAppointment creates a new booking with status pending arrival.
	CreateAppointment(ctx context.Context, booking BookingRequest) (*BookingResult, error)

	// CancelAppointment cancels a booking that is still pending arrival.
	CancelAppointment(ctx context.Context, apptID int64) error
}

// Reader determines the methods available to read bookings.
type Reader interface {

	// GetAppointments returns the bookings made with the given phone number,
	// most recent first. The phone number is the lookup key; an unknown
	// phone yields an empty list, not an error.
	GetAppointments(ctx context.Context, phone string) ([]*Appointment, error)
}

// Service determines the methods used to manage bookings.
type Service interface {
	Reader
	Writer
}

type defaultService struct {
	repository Repository
}

// NewService creates a new appointment service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{repository: newRepository(dbConn)}
}

func (d defaultService) CreateAppointment(ctx context.Context, booking BookingRequest) (*BookingResult, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	apptID, err := d.repository.InsertAppointment(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &BookingResult{ApptID: apptID}, nil
}

func (d defaultService) GetAppointments(ctx context.Context, phone string) ([]*Appointment, error) {
	appointments, err := d.repository.ListAppointmentsByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return appointments, nil
}

func (d defaultService) CancelAppointment(ctx context.Context, apptID int64) error {
	affected, err := d.repository.CancelAppointment(ctx, apptID)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if affected == 0 {
		return ErrNotCancellable
	}
	return nil
}
