package appointment

import (
	"context"

	"clinic-desk/internal/database"
)

const (
	insertAppointmentQuery = "INSERT INTO appointment (patient_name, phone, dept_id, doctor_id, appt_date, appt_time, status) VALUES ($1, $2, $3, $4, $5, $6, 'pending_arrival') RETURNING appt_id"
	listAppointmentsQuery  = "SELECT a.appt_id, a.patient_name, a.phone, d.dept_name, to_char(a.appt_date, 'YYYY-MM-DD') AS appt_date, to_char(a.appt_time, 'HH24:MI') AS appt_time, a.status, to_char(a.created_at, 'YYYY-MM-DD HH24:MI:SS') AS created_at FROM appointment a JOIN department d ON a.dept_id = d.dept_id WHERE a.phone = $1 ORDER BY a.appt_date DESC, a.appt_time DESC"
	cancelAppointmentQuery = "UPDATE appointment SET status = 'cancelled' WHERE appt_id = $1 AND status = 'pending_arrival'"
)

// Repository provides access to booking data.
type Repository interface {

	// InsertAppointment inserts a new appointment and returns its identifier.
	InsertAppointment(ctx context.Context, booking BookingRequest) (int64, error)

	// ListAppointmentsByPhone lists the appointments made with the given phone number.
	ListAppointmentsByPhone(ctx context.Context, phone string) ([]*Appointment, error)

	// CancelAppointment cancels a pending appointment, reporting how many rows changed.
	CancelAppointment(ctx context.Context, apptID int64) (int64, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// newRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) InsertAppointment(ctx context.Context, booking BookingRequest) (int64, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 6)
	params[0] = booking.PatientName
	params[1] = booking.Phone
	params[2] = booking.DeptID
	params[3] = booking.DoctorID
	params[4] = booking.ApptDate
	params[5] = booking.ApptTime
	var apptID int64
	if err := d.dbConn.DB().QueryRowContext(ctx, insertAppointmentQuery, params...).Scan(&apptID); err != nil {
		return 0, err
	}
	return apptID, nil
}

func (d defaultRepository) ListAppointmentsByPhone(ctx context.Context, phone string) ([]*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 1)
	params[0] = phone
	rows, err := d.dbConn.DB().QueryContext(ctx, listAppointmentsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointments := make([]*Appointment, 0)
	for rows.Next() {
		appointment := new(Appointment)
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (d defaultRepository) CancelAppointment(ctx context.Context, apptID int64) (int64, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 1)
	params[0] = apptID
	result, err := d.dbConn.DB().ExecContext(ctx, cancelAppointmentQuery, params...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
