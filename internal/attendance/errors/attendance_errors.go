package attendanceerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"already checked in for today",
		http.StatusBadRequest,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"not checked in for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for today",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
