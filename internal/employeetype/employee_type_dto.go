package employeetype

type CreateEmployeeTypeRequest struct {
	TypeName     string `json:"type_name" binding:"required"`
	ClockInTime  string `json:"clock_in_time" binding:"required"`
	ClockOutTime string `json:"clock_out_time" binding:"required"`
}

type UpdateEmployeeTypeRequest struct {
	TypeName     string `json:"type_name" binding:"required"`
	ClockInTime  string `json:"clock_in_time" binding:"required"`
	ClockOutTime string `json:"clock_out_time" binding:"required"`
}

type EmployeeTypeResponse struct {
	ID           string `json:"id"`
	TypeName     string `json:"type_name"`
	ClockInTime  string `json:"clock_in_time"`
	ClockOutTime string `json:"clock_out_time"`
}
