package reporting

import (
	"context"

	"clinic-desk/internal/database"
)

const (
	dailyStatsQuery      = "SELECT to_char(b.payment_time::date, 'YYYY-MM-DD') AS stat_date, COUNT(DISTINCT b.visit_id) AS visit_count, SUM(b.total_fee) AS revenue FROM billing b WHERE b.payment_status = 'paid' AND b.payment_time::date BETWEEN $1 AND $2 GROUP BY b.payment_time::date ORDER BY stat_date"
	departmentStatsQuery = "SELECT d.dept_name, COUNT(DISTINCT v.visit_id) AS visit_count, SUM(b.total_fee) AS revenue FROM billing b JOIN visit v ON b.visit_id = v.visit_id JOIN department d ON v.dept_id = d.dept_id WHERE b.payment_status = 'paid' AND b.payment_time::date BETWEEN $1 AND $2 GROUP BY d.dept_name ORDER BY revenue DESC"
	doctorStatsQuery     = "SELECT e.emp_name AS doctor_name, d.dept_name, COUNT(DISTINCT v.visit_id) AS visit_count, SUM(b.total_fee) AS revenue FROM billing b JOIN visit v ON b.visit_id = v.visit_id JOIN employee e ON v.doctor_id = e.emp_id JOIN department d ON e.dept_id = d.dept_id WHERE b.payment_status = 'paid' AND b.payment_time::date BETWEEN $1 AND $2 GROUP BY e.emp_name, d.dept_name ORDER BY revenue DESC"

	todayVisitsQuery   = "SELECT COUNT(*) FROM visit WHERE visit_date = CURRENT_DATE"
	todayRevenueQuery  = "SELECT COALESCE(SUM(total_fee), 0) FROM billing WHERE payment_status = 'paid' AND payment_time::date = CURRENT_DATE"
	waitingCountQuery  = "SELECT COUNT(*) FROM visit WHERE visit_date = CURRENT_DATE AND status = 'waiting'"
	activeDoctorsQuery = "SELECT COUNT(*) FROM employee WHERE emp_type = 'doctor' AND work_status = 'active'"
)

// Repository provides access to aggregated billing and visit data.
type Repository interface {

	// DailyStats aggregates paid billings per day inside the given period.
	DailyStats(ctx context.Context, startDate string, endDate string) ([]*DailyStat, error)

	// DepartmentStats aggregates paid billings per department inside the given period.
	DepartmentStats(ctx context.Context, startDate string, endDate string) ([]*DepartmentStat, error)

	// DoctorStats aggregates paid billings per doctor inside the given period.
	DoctorStats(ctx context.Context, startDate string, endDate string) ([]*DoctorStat, error)

	// Dashboard returns the front page counters of the current day.
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// newRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) DailyStats(ctx context.Context, startDate string, endDate string) ([]*DailyStat, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 2)
	params[0] = startDate
	params[1] = endDate
	rows, err := d.dbConn.DB().QueryContext(ctx, dailyStatsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	stats := make([]*DailyStat, 0)
	for rows.Next() {
		stat := new(DailyStat)
		if err = database.TransformRow(rows, stat); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (d defaultRepository) DepartmentStats(ctx context.Context, startDate string, endDate string) ([]*DepartmentStat, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 2)
	params[0] = startDate
	params[1] = endDate
	rows, err := d.dbConn.DB().QueryContext(ctx, departmentStatsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	stats := make([]*DepartmentStat, 0)
	for rows.Next() {
		stat := new(DepartmentStat)
		if err = database.TransformRow(rows, stat); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (d defaultRepository) DoctorStats(ctx context.Context, startDate string, endDate string) ([]*DoctorStat, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 2)
	params[0] = startDate
	params[1] = endDate
	rows, err := d.dbConn.DB().QueryContext(ctx, doctorStatsQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	stats := make([]*DoctorStat, 0)
	for rows.Next() {
		stat := new(DoctorStat)
		if err = database.TransformRow(rows, stat); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (d defaultRepository) Dashboard(ctx context.Context) (*Dashboard, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	dashboard := new(Dashboard)
	if err := d.dbConn.DB().QueryRowContext(ctx, todayVisitsQuery).Scan(&dashboard.TodayVisits); err != nil {
		return nil, err
	}
	if err := d.dbConn.DB().QueryRowContext(ctx, todayRevenueQuery).Scan(&dashboard.TodayRevenue); err != nil {
		return nil, err
	}
	if err := d.dbConn.DB().QueryRowContext(ctx, waitingCountQuery).Scan(&dashboard.WaitingCount); err != nil {
		return nil, err
	}
	if err := d.dbConn.DB().QueryRowContext(ctx, activeDoctorsQuery).Scan(&dashboard.ActiveDoctors); err != nil {
		return nil, err
	}
	return dashboard, nil
}
