package api

import (
	"errors"
	"net/http"
	"strconv"

	"tripd/internal/domain/booking"
	reqdto "tripd/internal/handler/dto/request"
	resdto "tripd/internal/handler/dto/response"
	"tripd/internal/handler/middleware"
	"tripd/internal/usecase/commands"
	"tripd/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Reserve seats
// @Description Atomically reserve a set of seats on a schedule
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveSeatsRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveSeatsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) ReserveSeats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReserveSeatsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	passengers := make([]commands.PassengerParams, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, commands.PassengerParams{
			FullName: p.FullName,
			Age:      p.Age,
			Gender:   p.Gender,
			Contact:  p.Contact,
		})
	}

	bookingID, err := h.bookingCommands.ReserveSeats(c.Request.Context(), commands.ReserveSeatsParams{
		UserID:     userID,
		ScheduleID: req.ScheduleID,
		Seats:      req.Seats,
		Passengers: passengers,
	})
	if err != nil {
		h.respondReserveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.ReserveSeatsResponse{BookingID: bookingID})
}

func (h *BookingHandler) respondReserveError(c *gin.Context, err error) {
	var seatConflict *commands.SeatConflictError
	switch {
	case errors.Is(err, commands.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Schedule not found",
		})
	case errors.As(err, &seatConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Seat already held",
			"seat":  string(seatConflict.Seat),
		})
	case errors.Is(err, commands.ErrSeatConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Seat already held",
		})
	case errors.Is(err, commands.ErrBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Schedule is busy, retry shortly",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Cancel booking
// @Description Cancel a confirmed booking and release its seats
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, booking.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking already cancelled",
			})
		case errors.Is(err, booking.ErrPastDeparture):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Departure has passed, booking can no longer be cancelled",
			})
		case errors.Is(err, commands.ErrBusy):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Schedule is busy, retry shortly",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "cancelled",
	})
}

// @Summary Get booking
// @Description Get one of the caller's bookings by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List the caller's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows to return"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	items, err := h.bookingQueries.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.BookingListResponse, 0, len(items))
	for _, item := range items {
		result = append(result, resdto.FromBookingListItem(item))
	}
	c.JSON(http.StatusOK, result)
}
