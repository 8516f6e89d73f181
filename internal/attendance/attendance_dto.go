package attendance

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CheckOutRequest struct{}

type SummaryFilter struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeNIP    string   `json:"employee_nip,omitempty"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	ClockIn        *string  `json:"clock_in,omitempty"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
}

type SummaryResponse struct {
	Records      []AttendanceResponse `json:"records"`
	StatusCounts map[string]int       `json:"status_counts"`
	Total        int                  `json:"total"`
}
