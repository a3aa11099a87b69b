package directory

type Department struct {
	ID          int64   `json:"dept_id" dbfield:"dept_id"`
	Name        string  `json:"dept_name" dbfield:"dept_name"`
	Description *string `json:"description" dbfield:"description"`
}

type ClinicRoom struct {
	ID     int64  `json:"room_id" dbfield:"room_id"`
	Name   string `json:"room_name" dbfield:"room_name"`
	Status string `json:"status" dbfield:"status"`
}

type Doctor struct {
	ID       int64   `json:"emp_id" dbfield:"emp_id"`
	Name     string  `json:"emp_name" dbfield:"emp_name"`
	Title    *string `json:"title" dbfield:"title"`
	DeptName *string `json:"dept_name" dbfield:"dept_name"`
}

type Employee struct {
	ID         int64   `json:"emp_id" dbfield:"emp_id"`
	Name       string  `json:"emp_name" dbfield:"emp_name"`
	Type       string  `json:"emp_type" dbfield:"emp_type"`
	DeptName   *string `json:"dept_name" dbfield:"dept_name"`
	Title      *string `json:"title" dbfield:"title"`
	Phone      *string `json:"phone" dbfield:"phone"`
	WorkStatus string  `json:"work_status" dbfield:"work_status"`
}
