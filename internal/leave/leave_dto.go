package leave

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeNIP  string  `json:"employee_nip,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason,omitempty"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}
