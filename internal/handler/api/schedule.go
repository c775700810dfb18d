package api

import (
	"errors"
	"net/http"
	"time"

	resdto "tripd/internal/handler/dto/response"
	"tripd/internal/handler/httperr"
	"tripd/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleQueries queries.ScheduleQueries
}

func NewScheduleHandler(scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleQueries: scheduleQueries,
	}
}

// @Summary Search schedules
// @Description Search schedules by route and travel date
// @Tags schedules
// @Produce json
// @Param from query string false "Origin"
// @Param to query string false "Destination"
// @Param date query string false "Travel date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Router /schedules [get]
func (h *ScheduleHandler) SearchSchedules(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	views, err := h.scheduleQueries.Search(c.Request.Context(), c.Query("from"), c.Query("to"), day)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to search schedules", nil)
		return
	}

	result := make([]*resdto.ScheduleResponse, 0, len(views))
	for _, v := range views {
		result = append(result, resdto.FromScheduleView(v))
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get schedule
// @Description Get a schedule by ID
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid schedule ID format", nil)
		return
	}

	view, err := h.scheduleQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrScheduleNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Schedule not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load schedule", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

// @Summary Get seat availability
// @Description List seats currently held on a schedule
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /schedules/{id}/availability [get]
func (h *ScheduleHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid schedule ID format", nil)
		return
	}

	view, err := h.scheduleQueries.GetAvailability(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrScheduleNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Schedule not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load availability", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
