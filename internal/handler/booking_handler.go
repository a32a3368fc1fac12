package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderstay/booking-engine/internal/dto"
	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, adminGuard echo.MiddlewareFunc) {
	e.POST("/api/v1/room-types/:id/bookings", h.CreateBooking)
	e.GET("/api/v1/bookings/:id", h.GetBooking)
	e.DELETE("/api/v1/bookings/:id", h.CancelBooking)
	e.GET("/api/v1/guests/:id/bookings", h.ListGuestBookings)

	admin := e.Group("/api/v1/admin", adminGuard)
	admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	roomTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room type id")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	checkIn, _ := dto.ParseDate(req.CheckIn)
	checkOut, _ := dto.ParseDate(req.CheckOut)

	booking, err := h.svc.CreateBooking(c.Request().Context(), req.GuestID, uint(roomTypeID), checkIn, checkOut, req.Source)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomTypeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidRange):
			return c.JSON(http.StatusUnprocessableEntity, dto.ResultFail(err.Error(), nil))
		case errors.Is(err, service.ErrMinimumStayNotMet),
			errors.Is(err, service.ErrDatesBlocked),
			errors.Is(err, service.ErrNoAvailability):
			return c.JSON(http.StatusConflict, dto.ResultFail(err.Error(), nil))
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ResultOK(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	guestID := c.QueryParam("guest_id")
	if guestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_id is required")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), uint(bookingID), guestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, dto.ResultFail(err.Error(), booking))
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ResultOK(booking))
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), uint(bookingID), models.BookingStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ResultOK(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListGuestBookings(c echo.Context) error {
	guestID := c.Param("id")

	bookings, err := h.svc.ListGuestBookings(c.Request().Context(), guestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]*dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}
