package inventory

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) RecordStockIn(c *gin.Context) {
	var req RecordStockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordStockIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RecordMortality(c *gin.Context) {
	var req RecordMortalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordMortality(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RecordStockOut(c *gin.Context) {
	var req RecordStockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordStockOut(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) listMovements(c *gin.Context, list func(*gin.Context, StockFilter) ([]MovementResponse, error)) {
	var f StockFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := list(c, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListStockIn(c *gin.Context) {
	h.listMovements(c, func(c *gin.Context, f StockFilter) ([]MovementResponse, error) {
		return h.service.ListStockIn(c.Request.Context(), f)
	})
}

func (h *Handler) ListMortality(c *gin.Context) {
	h.listMovements(c, func(c *gin.Context, f StockFilter) ([]MovementResponse, error) {
		return h.service.ListMortality(c.Request.Context(), f)
	})
}

func (h *Handler) ListStockOut(c *gin.Context) {
	h.listMovements(c, func(c *gin.Context, f StockFilter) ([]MovementResponse, error) {
		return h.service.ListStockOut(c.Request.Context(), f)
	})
}

func (h *Handler) StockReport(c *gin.Context) {
	var f StockFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.StockReport(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MortalityRecap(c *gin.Context) {
	var f StockFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.MortalityRecap(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
