package employee

type CreateEmployeeRequest struct {
	NIP            string  `json:"nip" binding:"required"`
	FullName       string  `json:"full_name" binding:"required"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	EmployeeTypeID string  `json:"employee_type_id" binding:"required,uuid"`
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	EmployeeTypeID string `json:"employee_type_id" binding:"required,uuid"`
}

type SetEmployeeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AKTIF NONAKTIF"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	NIP              string  `json:"nip"`
	FullName         string  `json:"full_name"`
	Phone            string  `json:"phone,omitempty"`
	Address          string  `json:"address,omitempty"`
	Status           string  `json:"status"`
	EmployeeTypeID   string  `json:"employee_type_id"`
	EmployeeTypeName string  `json:"employee_type_name,omitempty"`
	UserID           *string `json:"user_id,omitempty"`
}
