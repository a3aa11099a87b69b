package directory

import (
	"context"

	"clinic-desk/internal/database"
)

const (
	listDepartmentsQuery = "SELECT dept_id, dept_name, description FROM department ORDER BY dept_id"
	listRoomsQuery       = "SELECT room_id, room_name, status FROM clinic_room WHERE status = 'open' ORDER BY room_id"
	listRoomsByDeptQuery = "SELECT room_id, room_name, status FROM clinic_room WHERE dept_id = $1 AND status = 'open' ORDER BY room_id"
	listDoctorsQuery     = "SELECT e.emp_id, e.emp_name, e.title, d.dept_name FROM employee e LEFT JOIN department d ON e.dept_id = d.dept_id WHERE e.emp_type = 'doctor' AND e.work_status = 'active' ORDER BY e.emp_id"
	listEmployeesQuery   = "SELECT e.emp_id, e.emp_name, e.emp_type, d.dept_name, e.title, e.phone, e.work_status FROM employee e LEFT JOIN department d ON e.dept_id = d.dept_id ORDER BY e.emp_id"
)

// Repository provides access to the clinic's directory data.
type Repository interface {

	// ListDepartments lists every department.
	ListDepartments(ctx context.Context) ([]*Department, error)

	// ListRooms lists the open clinic rooms, optionally restricted to a department.
	ListRooms(ctx context.Context, deptID *int64) ([]*ClinicRoom, error)

	// ListDoctors lists the active doctors.
	ListDoctors(ctx context.Context) ([]*Doctor, error)

	// ListEmployees lists the whole staff.
	ListEmployees(ctx context.Context) ([]*Employee, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// newRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) ListDepartments(ctx context.Context) ([]*Department, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listDepartmentsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	departments := make([]*Department, 0)
	for rows.Next() {
		department := new(Department)
		if err = database.TransformRow(rows, department); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, nil
}

func (d defaultRepository) ListRooms(ctx context.Context, deptID *int64) ([]*ClinicRoom, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	query := listRoomsQuery
	params := make([]interface{}, 0, 1)
	if deptID != nil {
		query = listRoomsByDeptQuery
		params = append(params, *deptID)
	}
	rows, err := d.dbConn.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	rooms := make([]*ClinicRoom, 0)
	for rows.Next() {
		room := new(ClinicRoom)
		if err = database.TransformRow(rows, room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (d defaultRepository) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listDoctorsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctors := make([]*Doctor, 0)
	for rows.Next() {
		doctor := new(Doctor)
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	return doctors, nil
}

func (d defaultRepository) ListEmployees(ctx context.Context) ([]*Employee, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listEmployeesQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	employees := make([]*Employee, 0)
	for rows.Next() {
		employee := new(Employee)
		if err = database.TransformRow(rows, employee); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, nil
}
