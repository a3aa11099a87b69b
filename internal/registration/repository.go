package registration

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-desk/internal/database"
)

const (
	findPatientByPhoneQuery = "SELECT patient_id, patient_name, gender, id_card, phone FROM patient WHERE phone = $1"
	findPatientByIDQuery    = "SELECT patient_id, patient_name, gender, id_card, phone FROM patient WHERE patient_id = $1"
	insertPatientQuery      = "INSERT INTO patient (patient_name, gender, id_card, phone) VALUES ($1, $2, $3, $4) RETURNING patient_id"
	insertVisitQuery        = "INSERT INTO visit (patient_id, dept_id, room_id, doctor_id, visit_date, visit_time, status) VALUES ($1, $2, $3, $4, CURRENT_DATE, CURRENT_TIME, 'waiting') RETURNING visit_id"
	markAppointmentQuery    = "UPDATE appointment SET status = 'arrived', patient_id = $2 WHERE appt_id = $1"
	listVisitsQuery         = "SELECT v.visit_id, p.patient_name, d.dept_name, cr.room_name, to_char(v.visit_time, 'HH24:MI') AS visit_time, v.status, e.emp_name AS doctor_name FROM visit v JOIN patient p ON v.patient_id = p.patient_id JOIN department d ON v.dept_id = d.dept_id JOIN clinic_room cr ON v.room_id = cr.room_id LEFT JOIN employee e ON v.doctor_id = e.emp_id WHERE v.visit_date = $1 ORDER BY v.visit_time DESC"
	listVisitsByStatusQuery = "SELECT v.visit_id, p.patient_name, d.dept_name, cr.room_name, to_char(v.visit_time, 'HH24:MI') AS visit_time, v.status, e.emp_name AS doctor_name FROM visit v JOIN patient p ON v.patient_id = p.patient_id JOIN department d ON v.dept_id = d.dept_id JOIN clinic_room cr ON v.room_id = cr.room_id LEFT JOIN employee e ON v.doctor_id = e.emp_id WHERE v.visit_date = $1 AND v.status = $2 ORDER BY v.visit_time DESC"
	listPatientVisitsQuery  = "SELECT v.visit_id, to_char(v.visit_date, 'YYYY-MM-DD') AS visit_date, to_char(v.visit_time, 'HH24:MI') AS visit_time, d.dept_name, cr.room_name, e.emp_name AS doctor_name, v.diagnosis, v.prescription, v.status FROM visit v JOIN department d ON v.dept_id = d.dept_id JOIN clinic_room cr ON v.room_id = cr.room_id LEFT JOIN employee e ON v.doctor_id = e.emp_id WHERE v.patient_id = $1 ORDER BY v.visit_date DESC, v.visit_time DESC"
	searchPatientsQuery     = "SELECT p.patient_id, p.patient_name, p.gender, p.phone, p.id_card, COUNT(v.visit_id) AS visit_count, to_char(MAX(v.visit_date), 'YYYY-MM-DD') AS last_visit_date FROM patient p LEFT JOIN visit v ON p.patient_id = v.patient_id WHERE p.patient_name LIKE $1 OR p.phone LIKE $1 OR p.id_card LIKE $1 GROUP BY p.patient_id ORDER BY last_visit_date DESC NULLS LAST LIMIT 100"
)

// Repository provides access to patient and visit data. The write methods
// take the enclosing transaction, since registration performs several
// dependent statements that must commit together.
type Repository interface {

	// FindPatientByPhone finds a patient by its phone number inside the given transaction.
	FindPatientByPhone(ctx context.Context, tx *sql.Tx, phone string) (*Patient, error)

	// FindPatientByID finds a patient by its identifier.
	FindPatientByID(ctx context.Context, patientID int64) (*Patient, error)

	// InsertPatient inserts a new patient and returns its identifier.
	InsertPatient(ctx context.Context, tx *sql.Tx, patient Patient) (int64, error)

	// InsertVisit inserts a new waiting visit at the current date and time.
	InsertVisit(ctx context.Context, tx *sql.Tx, patientID int64, deptID int64, roomID int64, doctorID *int64) (int64, error)

	// MarkAppointmentArrived marks the given appointment as arrived and links the patient.
	MarkAppointmentArrived(ctx context.Context, tx *sql.Tx, apptID int64, patientID int64) error

	// ListVisits lists the visits of the given date, optionally filtered by status.
	ListVisits(ctx context.Context, date string, status string) ([]*VisitSummary, error)

	// ListPatientVisits lists every visit ever recorded for the given patient.
	ListPatientVisits(ctx context.Context, patientID int64) ([]*VisitRecord, error)

	// SearchPatients searches patients by name, phone or id card.
	SearchPatients(ctx context.Context, keyword string) ([]*PatientSummary, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// newRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) FindPatientByPhone(ctx context.Context, tx *sql.Tx, phone string) (*Patient, error) {
	params := make([]interface{}, 1)
	params[0] = phone
	rows, err := tx.QueryContext(ctx, findPatientByPhoneQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patient := new(Patient)
	for rows.Next() {
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		if patient.ID > 0 {
			return patient, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindPatientByID(ctx context.Context, patientID int64) (*Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 1)
	params[0] = patientID
	rows, err := d.dbConn.DB().QueryContext(ctx, findPatientByIDQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patient := new(Patient)
	for rows.Next() {
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		if patient.ID > 0 {
			return patient, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) InsertPatient(ctx context.Context, tx *sql.Tx, patient Patient) (int64, error) {
	params := make([]interface{}, 4)
	params[0] = patient.Name
	params[1] = patient.Gender
	params[2] = patient.IDCard
	params[3] = patient.Phone
	var patientID int64
	if err := tx.QueryRowContext(ctx, insertPatientQuery, params...).Scan(&patientID); err != nil {
		return 0, err
	}
	return patientID, nil
}

func (d defaultRepository) InsertVisit(ctx context.Context, tx *sql.Tx, patientID int64, deptID int64, roomID int64, doctorID *int64) (int64, error) {
	params := make([]interface{}, 4)
	params[0] = patientID
	params[1] = deptID
	params[2] = roomID
	params[3] = doctorID
	var visitID int64
	if err := tx.QueryRowContext(ctx, insertVisitQuery, params...).Scan(&visitID); err != nil {
		return 0, err
	}
	return visitID, nil
}

func (d defaultRepository) MarkAppointmentArrived(ctx context.Context, tx *sql.Tx, apptID int64, patientID int64) error {
	params := make([]interface{}, 2)
	params[0] = apptID
	params[1] = patientID
	result, err := tx.ExecContext(ctx, markAppointmentQuery, params...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment %d not found", apptID)
	}
	return nil
}

func (d defaultRepository) ListVisits(ctx context.Context, date string, status string) ([]*VisitSummary, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	query := listVisitsQuery
	params := []interface{}{date}
	if status != "" {
		query = listVisitsByStatusQuery
		params = append(params, status)
	}
	rows, err := d.dbConn.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	visits := make([]*VisitSummary, 0)
	for rows.Next() {
		visit := new(VisitSummary)
		if err = database.TransformRow(rows, visit); err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

func (d defaultRepository) ListPatientVisits(ctx context.Context, patientID int64) ([]*VisitRecord, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 1)
	params[0] = patientID
	rows, err := d.dbConn.DB().QueryContext(ctx, listPatientVisitsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	visits := make([]*VisitRecord, 0)
	for rows.Next() {
		visit := new(VisitRecord)
		if err = database.TransformRow(rows, visit); err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

func (d defaultRepository) SearchPatients(ctx context.Context, keyword string) ([]*PatientSummary, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 1)
	params[0] = fmt.Sprintf("%%%s%%", keyword)
	rows, err := d.dbConn.DB().QueryContext(ctx, searchPatientsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patients := make([]*PatientSummary, 0)
	for rows.Next() {
		patient := new(PatientSummary)
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, nil
}
