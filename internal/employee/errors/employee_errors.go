package employeeerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrNIPAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee number (NIP) already exists",
		http.StatusConflict,
	)
	ErrUserAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"user already owns an employee record",
		http.StatusConflict,
	)
	ErrEmployeeTypeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee type not found",
		http.StatusBadRequest,
	)
)
