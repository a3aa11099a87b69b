// Package reporting contains handlers, services and structures used to build
// the management statistics and the front page dashboard.
package reporting

import (
	"context"
	"fmt"
	"time"

	"clinic-desk/internal/database"
)

// Reader determines the methods available to read aggregated figures.
type Reader interface {

	// GetStatistics aggregates paid billings inside the given period, grouped
	// per day, department or doctor depending on the statistics type.
	GetStatistics(ctx context.Context, statisticsType string, startDate string, endDate string) (interface{}, error)

	// GetDashboard returns the front page counters of the current day.
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// Service determines the methods used to build reports.
type Service interface {
	Reader
}

type defaultService struct {
	repository Repository
	dbConn     database.Connection
}

// NewService creates a new reporting service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{
		dbConn:     dbConn,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) GetStatistics(ctx context.Context, statisticsType string, startDate string, endDate string) (interface{}, error) {
	if !validDate(startDate) || !validDate(endDate) {
		return nil, ErrInvalidDateReference
	}
	var (
		stats interface{}
		err   error
	)
	switch statisticsType {
	case TypeDaily:
		stats, err = d.repository.DailyStats(ctx, startDate, endDate)
	case TypeDepartment:
		stats, err = d.repository.DepartmentStats(ctx, startDate, endDate)
	case TypeDoctor:
		stats, err = d.repository.DoctorStats(ctx, startDate, endDate)
	default:
		return nil, ErrUnknownStatisticsType
	}
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return stats, nil
}

func (d defaultService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, err := d.repository.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return dashboard, nil
}

func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
