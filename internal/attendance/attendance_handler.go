package attendance

import (
	"encoding/json"
	"net/http"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, logger: zap.L().Named("attendance.handler")}
}

// NewHandlerWithRedis mengaktifkan cache rekap admin.
func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	h := NewHandler(service)
	h.rdb = rdb
	return h
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	resp, err := h.service.CheckOut(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdminSummary(c *gin.Context) {
	var f SummaryFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if h.rdb != nil {
		cacheKey := summaryCacheKey(f)
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
		}
	}

	resp, err := h.service.AdminSummary(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(c.Request.Context(), summaryCacheKey(f), payload, summaryCacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache summary", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
