package inventoryerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidHeadCount = apperror.New(
		apperror.CodeInvalidInput,
		"head count must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidClaimStatus = apperror.New(
		apperror.CodeInvalidInput,
		"claim status must be BISA_CLAIM or TIDAK_BISA",
		http.StatusBadRequest,
	)
	ErrInvalidEntryDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entry date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
