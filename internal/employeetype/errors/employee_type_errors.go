package employeetypeerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrEmployeeTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee type not found",
		http.StatusNotFound,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"clock time must use HH:MM 24-hour format",
		http.StatusBadRequest,
	)
	ErrEmployeeTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"employee type name already exists",
		http.StatusConflict,
	)
)
