package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/komalrathore0521/BookVenue/internal/api"
	"github.com/komalrathore0521/BookVenue/internal/logger"
)

const confirmedMessage = "Booking confirmed successfully"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes mounts the booking endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.GET("", h.ListBookings)
	bookings.POST("", h.CreateBooking)
	bookings.GET("/recent", h.RecentBookings)
	bookings.GET("/count", h.CountBookings)
	bookings.GET("/stats", h.Stats)
	bookings.GET("/:id", h.GetBooking)
	bookings.PUT("/:id", h.UpdateBooking)
	bookings.DELETE("/:id", h.DeleteBooking)
}

// @Summary      Create a booking
// @Description  Books a venue for one date. Fails when the venue is unknown, the date is blocked, or a confirmed booking already exists.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.CreateBookingResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Venue not found"})
		case errors.Is(err, ErrMissingDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking date is required"})
		case errors.Is(err, ErrVenueUnavailable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Venue is not available on the selected date"})
		case errors.Is(err, ErrDateAlreadyBooked):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Venue is already booked on this date"})
		default:
			logger.Error("failed to create booking", "venue_id", req.VenueID, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{Message: confirmedMessage, Booking: b})
}

// @Summary      List bookings
// @Description  All bookings, or one filtered listing: by venue, by email, or by booking date range.
// @Tags         bookings
// @Produce      json
// @Param        venueId query int    false "Venue ID (newest first)"
// @Param        email   query string false "User email (newest first)"
// @Param        from    query string false "First booking date, inclusive (YYYY-MM-DD)"
// @Param        to      query string false "Last booking date, inclusive (YYYY-MM-DD)"
// @Success      200 {array} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("failed to list bookings", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Recent bookings
// @Description  The ten most recently created bookings, newest first.
// @Tags         bookings
// @Produce      json
// @Success      200 {array} booking.Booking
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/recent [get]
func (h *Handler) RecentBookings(c *gin.Context) {
	bookings, err := h.service.GetRecentBookings(c.Request.Context())
	if err != nil {
		logger.Error("failed to fetch recent bookings", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	logger.Debug("recent bookings", "count", len(bookings))
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Count bookings
// @Tags         bookings
// @Produce      json
// @Success      200 {object} booking.CountResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/count [get]
func (h *Handler) CountBookings(c *gin.Context) {
	counts, err := h.service.CountBookings(c.Request.Context())
	if err != nil {
		logger.Error("failed to count bookings", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to count bookings"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// @Summary      Booking statistics
// @Description  Confirmed and cancelled counts plus confirmed revenue, per booking date and per venue.
// @Tags         bookings
// @Produce      json
// @Param        from query string true "First booking date, inclusive (YYYY-MM-DD)"
// @Param        to   query string true "Last booking date, inclusive (YYYY-MM-DD)"
// @Success      200 {object} booking.StatsResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var filter StatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from and to are required"})
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("failed to load booking stats", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load booking stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		logger.Error("failed to fetch booking", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Update a booking
// @Description  Overwrites user name, email, date and hours. Cost and venue availability are not recalculated.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body booking.UpdateBookingRequest true "Booking fields"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/{id} [put]
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrDateAlreadyBooked):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Venue is already booked on this date"})
		default:
			logger.Error("failed to update booking", "booking_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Delete a booking
// @Description  Hard delete. Succeeds for unknown ids. The venue date stays blocked.
// @Tags         bookings
// @Param        id path int true "Booking ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/{id} [delete]
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := parseAnyID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		logger.Error("failed to delete booking", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete booking"})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := parseAnyID(c)
	if ok && id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return 0, false
	}
	return id, ok
}

// parseAnyID accepts zero and negative ids, which can never match a row.
func parseAnyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return 0, false
	}
	return id, true
}
