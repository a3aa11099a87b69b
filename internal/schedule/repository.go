package schedule

import (
	"context"

	"clinic-desk/internal/database"
)

const (
	insertScheduleQuery      = "INSERT INTO doctor_schedule (doctor_id, room_id, work_date, start_time, end_time, max_patients, current_patients) VALUES ($1, $2, $3, $4, $5, $6, 0) RETURNING schedule_id"
	listSchedulesQuery       = "SELECT s.schedule_id, e.emp_name AS doctor_name, e.title, d.dept_name, cr.room_name, to_char(s.work_date, 'YYYY-MM-DD') AS work_date, to_char(s.start_time, 'HH24:MI') AS start_time, to_char(s.end_time, 'HH24:MI') AS end_time, s.max_patients, s.current_patients FROM doctor_schedule s JOIN employee e ON s.doctor_id = e.emp_id JOIN department d ON e.dept_id = d.dept_id JOIN clinic_room cr ON s.room_id = cr.room_id ORDER BY s.work_date, s.start_time"
	listSchedulesByDateQuery = "SELECT s.schedule_id, e.emp_name AS doctor_name, e.title, d.dept_name, cr.room_name, to_char(s.work_date, 'YYYY-MM-DD') AS work_date, to_char(s.start_time, 'HH24:MI') AS start_time, to_char(s.end_time, 'HH24:MI') AS end_time, s.max_patients, s.current_patients FROM doctor_schedule s JOIN employee e ON s.doctor_id = e.emp_id JOIN department d ON e.dept_id = d.dept_id JOIN clinic_room cr ON s.room_id = cr.room_id WHERE s.work_date = $1 ORDER BY s.start_time"
)

// Repository provides access to doctor schedule data.
type Repository interface {

	// InsertSchedule inserts a new schedule slot and returns its identifier.
	InsertSchedule(ctx context.Context, schedule ScheduleRequest) (int64, error)

	// ListSchedules lists the published schedule slots, optionally filtered by work date.
	ListSchedules(ctx context.Context, workDate string) ([]*Schedule, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// newRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) InsertSchedule(ctx context.Context, schedule ScheduleRequest) (int64, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 6)
	params[0] = schedule.DoctorID
	params[1] = schedule.RoomID
	params[2] = schedule.WorkDate
	params[3] = schedule.StartTime
	params[4] = schedule.EndTime
	params[5] = schedule.maxPatients()
	var scheduleID int64
	if err := d.dbConn.DB().QueryRowContext(ctx, insertScheduleQuery, params...).Scan(&scheduleID); err != nil {
		return 0, err
	}
	return scheduleID, nil
}

func (d defaultRepository) ListSchedules(ctx context.Context, workDate string) ([]*Schedule, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	query := listSchedulesQuery
	params := make([]interface{}, 0)
	if workDate != "" {
		query = listSchedulesByDateQuery
		params = append(params, workDate)
	}
	rows, err := d.dbConn.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	schedules := make([]*Schedule, 0)
	for rows.Next() {
		schedule := new(Schedule)
		if err = database.TransformRow(rows, schedule); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}
