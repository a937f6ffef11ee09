package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
)

// aggregateHandler handles HTTP requests for period rollups.
type aggregateHandler struct {
	aggregateService portssvc.AggregateSvcFacade
}

func newAggregateHandler(as portssvc.AggregateSvcFacade) *aggregateHandler {
	return &aggregateHandler{aggregateService: as}
}

// registerAggregateRoutes registers routes related to rollups.
func registerAggregateRoutes(rg *gin.RouterGroup, aggregateService portssvc.AggregateSvcFacade) {
	h := newAggregateHandler(aggregateService)

	aggregates := rg.Group("/users/:userID/aggregates")
	{
		aggregates.GET("", h.listAggregates)
		aggregates.GET("/:periodType/:periodStart", h.getAggregate)
	}
}

// listAggregates godoc
// @Summary List period rollups
// @Description Lists a user's rollups of one period type, newest first. Reading another user's rollups requires admin rights.
// @Tags aggregates
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   periodType query string true "Period type" Enums(DAILY, WEEKLY, MONTHLY)
// @Param   startDate query string false "Inclusive period-start lower bound (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive period-start upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAggregatesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list aggregates"
// @Security BearerAuth
// @Router /users/{userID}/aggregates [get]
func (h *aggregateHandler) listAggregates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetUserID := c.Param("userID")

	var params dto.ListAggregatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := domain.AggregateFilter{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}

	aggs, err := h.aggregateService.ListAggregates(c.Request.Context(), requestingUserID, targetUserID, params.PeriodType, filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list aggregates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list aggregates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListAggregatesResponse(aggs))
}

// getAggregate godoc
// @Summary Get one period rollup
// @Description Retrieves a single rollup by period type and period start date.
// @Tags aggregates
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   periodType path string true "Period type" Enums(DAILY, WEEKLY, MONTHLY)
// @Param   periodStart path string true "Period start date (YYYY-MM-DD)"
// @Success 200 {object} dto.AggregateResponse
// @Failure 400 {object} map[string]string "Invalid period type or date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Rollup not found"
// @Failure 500 {object} map[string]string "Failed to retrieve aggregate"
// @Security BearerAuth
// @Router /users/{userID}/aggregates/{periodType}/{periodStart} [get]
func (h *aggregateHandler) getAggregate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetUserID := c.Param("userID")
	periodType := domain.PeriodType(c.Param("periodType"))

	periodStart, err := time.Parse("2006-01-02", c.Param("periodStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period start date, expected YYYY-MM-DD"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	agg, err := h.aggregateService.GetAggregate(c.Request.Context(), requestingUserID, targetUserID, periodType, periodStart)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rollup not found"})
		} else {
			logger.Error("Failed to get aggregate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve aggregate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAggregateResponse(agg))
}
