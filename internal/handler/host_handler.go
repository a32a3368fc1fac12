package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderstay/booking-engine/internal/dto"
	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/repository"
)

// HostHandler covers the host pricing tools: room types, physical units,
// rate-calendar days and duration discounts. The booking engine itself only
// ever reads what these endpoints write.
type HostHandler struct {
	roomTypeRepo repository.RoomTypeRepository
	unitRepo     repository.UnitRepository
	calendarRepo repository.CalendarRepository
}

func NewHostHandler(roomTypeRepo repository.RoomTypeRepository, unitRepo repository.UnitRepository, calendarRepo repository.CalendarRepository) *HostHandler {
	return &HostHandler{roomTypeRepo: roomTypeRepo, unitRepo: unitRepo, calendarRepo: calendarRepo}
}

func (h *HostHandler) RegisterRoutes(e *echo.Echo) {
	host := e.Group("/api/v1/host")
	host.POST("/room-types", h.CreateRoomType)
	host.POST("/room-types/:id/units", h.CreateUnit)
	host.PATCH("/units/:id", h.UpdateUnit)
	host.PUT("/room-types/:id/calendar", h.UpsertCalendar)
	host.PUT("/room-types/:id/discounts", h.SetDiscount)
}

func (h *HostHandler) CreateRoomType(c echo.Context) error {
	var req dto.CreateRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	rt := &models.RoomType{
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		BasePrice:   req.BasePrice,
		WeeklyRate:  req.WeeklyRate,
		MonthlyRate: req.MonthlyRate,
		Currency:    currency,
	}
	if err := h.roomTypeRepo.Create(c.Request().Context(), rt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rt)
}

func (h *HostHandler) CreateUnit(c echo.Context) error {
	roomTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room type id")
	}

	var req dto.CreateUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.roomTypeRepo.FindByID(c.Request().Context(), uint(roomTypeID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room type not found")
	}

	unit := &models.RoomUnit{
		RoomTypeID: uint(roomTypeID),
		Label:      req.Label,
		Status:     models.UnitActive,
	}
	if err := h.unitRepo.Create(c.Request().Context(), unit); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, unit)
}

func (h *HostHandler) UpdateUnit(c echo.Context) error {
	unitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid unit id")
	}

	var req dto.UpdateUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	unit, err := h.unitRepo.FindByID(c.Request().Context(), uint(unitID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unit not found")
	}

	if err := h.unitRepo.UpdateStatus(c.Request().Context(), unit.ID, models.UnitStatus(req.Status)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	unit.Status = models.UnitStatus(req.Status)
	return c.JSON(http.StatusOK, unit)
}

func (h *HostHandler) UpsertCalendar(c echo.Context) error {
	roomTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room type id")
	}

	var req dto.UpsertCalendarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.roomTypeRepo.FindByID(c.Request().Context(), uint(roomTypeID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room type not found")
	}

	entries := make([]models.RateCalendarEntry, len(req.Entries))
	for i, day := range req.Entries {
		d, _ := dto.ParseDate(day.Day)
		minStay := day.MinStay
		if minStay == 0 {
			minStay = 1
		}
		entries[i] = models.RateCalendarEntry{
			RoomTypeID:  uint(roomTypeID),
			Day:         d,
			NightlyRate: day.NightlyRate,
			MinStay:     minStay,
			IsBlocked:   day.IsBlocked,
		}
	}

	if err := h.calendarRepo.UpsertEntries(c.Request().Context(), entries); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"upserted": len(entries)})
}

func (h *HostHandler) SetDiscount(c echo.Context) error {
	roomTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room type id")
	}

	var req dto.SetDiscountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.roomTypeRepo.FindByID(c.Request().Context(), uint(roomTypeID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room type not found")
	}

	d := &models.DurationDiscount{
		RoomTypeID:      uint(roomTypeID),
		StayType:        models.StayType(req.StayType),
		DiscountPercent: req.DiscountPercent,
	}
	if err := h.calendarRepo.SetDiscount(c.Request().Context(), d); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
