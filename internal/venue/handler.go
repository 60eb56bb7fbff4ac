package venue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/komalrathore0521/BookVenue/internal/api"
	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes mounts the venue endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	venues.GET("", h.ListVenues)
	venues.POST("", h.CreateVenue)
	venues.GET("/count", h.CountVenues)
	venues.GET("/search", h.FindByName)
	venues.GET("/:id", h.GetVenue)
	venues.PUT("/:id", h.UpdateVenue)
	venues.DELETE("/:id", h.DeleteVenue)
	venues.GET("/:id/availability", h.CheckAvailability)
	venues.PUT("/:id/availability", h.UpdateAvailability)
}

// @Summary      List venues
// @Description  Active venues, newest first. At most one filter applies: location, capacity range, price range, then creator.
// @Tags         venues
// @Produce      json
// @Param        location     query string false "Case-insensitive location substring"
// @Param        minCapacity  query int    false "Minimum capacity (with maxCapacity)"
// @Param        maxCapacity  query int    false "Maximum capacity (with minCapacity)"
// @Param        minPrice     query number false "Minimum price per hour (with maxPrice)"
// @Param        maxPrice     query number false "Maximum price per hour (with minPrice)"
// @Param        createdBy    query string false "Creator"
// @Success      200 {array} venue.Venue
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues [get]
func (h *Handler) ListVenues(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	venues, err := h.service.ListVenues(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("failed to list venues", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch venues"})
		return
	}

	c.JSON(http.StatusOK, venues)
}

// @Summary      Create a venue
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        request body venue.CreateVenueRequest true "Venue payload"
// @Success      201 {object} venue.Venue
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues [post]
func (h *Handler) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if !api.BindJSON(c, &req) {
		return
	}

	v, err := h.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		logger.Error("failed to create venue", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, v)
}

// @Summary      Get a venue
// @Tags         venues
// @Produce      json
// @Param        id path int true "Venue ID"
// @Success      200 {object} venue.Venue
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{id} [get]
func (h *Handler) GetVenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVenueByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Venue not found"})
			return
		}
		logger.Error("failed to fetch venue", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch venue"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary      Update a venue
// @Description  Overwrites name, location, capacity and price per hour.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        id path int true "Venue ID"
// @Param        request body venue.UpdateVenueRequest true "Venue fields"
// @Success      200 {object} venue.Venue
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{id} [put]
func (h *Handler) UpdateVenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateVenueRequest
	if !api.BindJSON(c, &req) {
		return
	}

	v, err := h.service.UpdateVenue(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Venue not found"})
			return
		}
		logger.Error("failed to update venue", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update venue"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary      Delete a venue
// @Description  Soft delete. Succeeds for unknown ids.
// @Tags         venues
// @Param        id path int true "Venue ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{id} [delete]
func (h *Handler) DeleteVenue(c *gin.Context) {
	id, ok := parseAnyID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVenue(c.Request.Context(), id); err != nil {
		logger.Error("failed to delete venue", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete venue"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Update venue availability
// @Description  Blocks then unblocks dates; a date in both lists ends up unblocked.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        id path int true "Venue ID"
// @Param        request body venue.AvailabilityUpdateRequest true "Dates to block and unblock"
// @Success      200 {object} venue.Venue
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{id}/availability [put]
func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AvailabilityUpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	v, err := h.service.UpdateAvailability(c.Request.Context(), id, req)
	if err != nil {
		// unknown venues answer 400 on this route
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Venue not found"})
			return
		}
		logger.Error("failed to update availability", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary      Check venue availability
// @Tags         venues
// @Produce      json
// @Param        id   path  int    true "Venue ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} venue.AvailabilityResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/{id}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	date, err := availability.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
		return
	}

	available, err := h.service.IsVenueAvailable(c.Request.Context(), id, date)
	if err != nil {
		logger.Error("failed to check availability", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{VenueID: id, Date: date, Available: available})
}

// @Summary      Find a venue by name
// @Description  Case-insensitive exact match, inactive venues included.
// @Tags         venues
// @Produce      json
// @Param        name query string true "Venue name"
// @Success      200 {object} venue.Venue
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/search [get]
func (h *Handler) FindByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name is required"})
		return
	}

	v, err := h.service.FindByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Venue not found"})
			return
		}
		logger.Error("failed to search venues", "name", name, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to search venues"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary      Count venues
// @Tags         venues
// @Produce      json
// @Success      200 {object} venue.CountResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /venues/count [get]
func (h *Handler) CountVenues(c *gin.Context) {
	counts, err := h.service.CountVenues(c.Request.Context())
	if err != nil {
		logger.Error("failed to count venues", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to count venues"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := parseAnyID(c)
	if ok && id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid venue ID"})
		return 0, false
	}
	return id, ok
}

// parseAnyID accepts zero and negative ids, which can never match a row.
func parseAnyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid venue ID"})
		return 0, false
	}
	return id, true
}
