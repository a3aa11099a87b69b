// Package directory contains handlers, services and structures used to look up
// the clinic's reference data: departments, rooms and staff.
package directory

import (
	"context"
	"fmt"

	"clinic-desk/internal/database"
)

// Reader determines the methods available to read the directory data.
type Reader interface {

	// GetDepartments returns every department.
	GetDepartments(ctx context.Context) ([]*Department, error)

	// GetRooms returns the open clinic rooms, optionally restricted to a department.
	GetRooms(ctx context.Context, deptID *int64) ([]*ClinicRoom, error)

	// GetDoctors returns the active doctors.
	GetDoctors(ctx context.Context) ([]*Doctor, error)

	// GetEmployees returns the whole staff.
	GetEmployees(ctx context.Context) ([]*Employee, error)
}

// Service determines the methods used to query the directory.
type Service interface {
	Reader
}

type defaultService struct {
	repository Repository
}

// NewService creates a new directory service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{repository: newRepository(dbConn)}
}

func (d defaultService) GetDepartments(ctx context.Context) ([]*Department, error) {
	departments, err := d.repository.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return departments, nil
}

func (d defaultService) GetRooms(ctx context.Context, deptID *int64) ([]*ClinicRoom, error) {
	rooms, err := d.repository.ListRooms(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return rooms, nil
}

func (d defaultService) GetDoctors(ctx context.Context) ([]*Doctor, error) {
	doctors, err := d.repository.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return doctors, nil
}

func (d defaultService) GetEmployees(ctx context.Context) ([]*Employee, error) {
	employees, err := d.repository.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return employees, nil
}
