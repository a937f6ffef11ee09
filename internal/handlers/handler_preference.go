package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
)

// preferenceHandler handles HTTP requests for user preferences.
type preferenceHandler struct {
	preferenceService portssvc.PreferenceSvcFacade
}

func newPreferenceHandler(ps portssvc.PreferenceSvcFacade) *preferenceHandler {
	return &preferenceHandler{preferenceService: ps}
}

// registerPreferenceRoutes registers routes related to preferences.
func registerPreferenceRoutes(rg *gin.RouterGroup, preferenceService portssvc.PreferenceSvcFacade) {
	h := newPreferenceHandler(preferenceService)

	prefs := rg.Group("/preferences")
	{
		prefs.GET("", h.getPreference)
		prefs.PUT("", h.setPreference)
	}
}

// getPreference godoc
// @Summary Get the caller's preference
// @Description Retrieves the caller's currency and timezone preference.
// @Tags preferences
// @Produce  json
// @Success 200 {object} dto.PreferenceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No preference set"
// @Failure 500 {object} map[string]string "Failed to retrieve preference"
// @Security BearerAuth
// @Router /preferences [get]
func (h *preferenceHandler) getPreference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pref, err := h.preferenceService.GetPreference(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No preference set"})
		} else {
			logger.Error("Failed to get preference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preference"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}

// setPreference godoc
// @Summary Set the caller's preference
// @Description Creates or replaces the caller's currency and timezone preference.
// @Tags preferences
// @Accept  json
// @Produce  json
// @Param   preference body dto.SetPreferenceRequest true "Preference details"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save preference"
// @Security BearerAuth
// @Router /preferences [put]
func (h *preferenceHandler) setPreference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pref, err := h.preferenceService.SetPreference(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set preference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}
