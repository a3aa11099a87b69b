package reporting

// Statistics types accepted by the statistics endpoint.
const (
	TypeDaily      = "daily"
	TypeDepartment = "department"
	TypeDoctor     = "doctor"
)

// DailyStat aggregates settled visits and revenue per calendar day.
type DailyStat struct {
	StatDate   string  `json:"stat_date" dbfield:"stat_date"`
	VisitCount int64   `json:"visit_count" dbfield:"visit_count"`
	Revenue    float64 `json:"revenue" dbfield:"revenue"`
}

// DepartmentStat aggregates settled visits and revenue per department.
type DepartmentStat struct {
	DeptName   string  `json:"dept_name" dbfield:"dept_name"`
	VisitCount int64   `json:"visit_count" dbfield:"visit_count"`
	Revenue    float64 `json:"revenue" dbfield:"revenue"`
}

// DoctorStat aggregates settled visits and revenue per doctor.
type DoctorStat struct {
	DoctorName string  `json:"doctor_name" dbfield:"doctor_name"`
	DeptName   string  `json:"dept_name" dbfield:"dept_name"`
	VisitCount int64   `json:"visit_count" dbfield:"visit_count"`
	Revenue    float64 `json:"revenue" dbfield:"revenue"`
}

// Dashboard carries the front page counters of the current day.
type Dashboard struct {
	TodayVisits   int64   `json:"today_visits"`
	TodayRevenue  float64 `json:"today_revenue"`
	WaitingCount  int64   `json:"waiting_count"`
	ActiveDoctors int64   `json:"active_doctors"`
}
