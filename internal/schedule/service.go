// Package schedule contains handlers, services and structures used to publish
// and consult doctor shifts.
package schedule

import (
	"context"
	"fmt"
	"time"

	"clinic-desk/internal/database"
)

// Writer determines the methods available to publish schedule slots.
type Writer interface {

	// CreateSchedule publishes a new shift for a doctor. A doctor cannot hold
	// two slots starting at the same date and time.
	CreateSchedule(ctx context.Context, schedule ScheduleRequest) (*ScheduleResult, error)
}

// Reader determines the methods available to read schedule slots.
type Reader interface {

	// GetSchedules returns the published slots, optionally filtered by work date.
	GetSchedules(ctx context.Context, workDate string) ([]*Schedule, error)
}

// Service determines the methods used to manage doctor schedules.
type Service interface {
	Writer
	Reader
}

type defaultService struct {
	repository Repository
	dbConn     database.Connection
}

// NewService creates a new schedule service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{
		dbConn:     dbConn,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) CreateSchedule(ctx context.Context, schedule ScheduleRequest) (*ScheduleResult, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	scheduleID, err := d.repository.InsertSchedule(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &ScheduleResult{ScheduleID: scheduleID}, nil
}

func (d defaultService) GetSchedules(ctx context.Context, workDate string) ([]*Schedule, error) {
	if workDate != "" {
		if _, err := time.Parse("2006-01-02", workDate); err != nil {
			return nil, ErrInvalidDateReference
		}
	}
	schedules, err := d.repository.ListSchedules(ctx, workDate)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return schedules, nil
}
