package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=USER ADMIN OWNER"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ResetPasswordRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type AuthResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             *string `json:"email,omitempty"`
	Role              string  `json:"role"`
	NeedPasswordReset bool    `json:"need_password_reset"`
}

type EmployeeProfile struct {
	ID       string `json:"id"`
	NIP      string `json:"nip"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
	TypeName string `json:"type_name,omitempty"`
}

type MeResponse struct {
	User     AuthResponse     `json:"user"`
	Employee *EmployeeProfile `json:"employee,omitempty"`
}

type ResetRequestResponse struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	RequestedAt string  `json:"requested_at"`
}
