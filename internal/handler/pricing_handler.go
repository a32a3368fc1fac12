package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/wanderstay/booking-engine/internal/dto"
	"github.com/wanderstay/booking-engine/internal/pricing"
	"github.com/wanderstay/booking-engine/internal/repository"
)

type PricingHandler struct {
	calculator *pricing.Calculator
	unitRepo   repository.UnitRepository
	cache      *redis.Client // nil disables quote caching
	cacheTTL   time.Duration
}

func NewPricingHandler(calculator *pricing.Calculator, unitRepo repository.UnitRepository, cache *redis.Client, cacheTTL time.Duration) *PricingHandler {
	return &PricingHandler{calculator: calculator, unitRepo: unitRepo, cache: cache, cacheTTL: cacheTTL}
}

func (h *PricingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/room-types/:id/quote", h.Quote)
	e.GET("/api/v1/room-types/:id/availability", h.Availability)
}

func parseDateRange(c echo.Context) (uint, time.Time, time.Time, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid room type id")
	}
	checkIn, err := dto.ParseDate(c.QueryParam("check_in"))
	if err != nil {
		return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "check_in must be YYYY-MM-DD")
	}
	checkOut, err := dto.ParseDate(c.QueryParam("check_out"))
	if err != nil {
		return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "check_out must be YYYY-MM-DD")
	}
	return uint(id), checkIn, checkOut, nil
}

// Quote returns the itemized price breakdown for a stay. Results are cached
// briefly in redis; rates change rarely and the TTL bounds staleness.
func (h *PricingHandler) Quote(c echo.Context) error {
	roomTypeID, checkIn, checkOut, err := parseDateRange(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	key := fmt.Sprintf("quote:%d:%s:%s", roomTypeID, dto.FormatDate(checkIn), dto.FormatDate(checkOut))
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, key).Bytes(); err == nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	breakdown, err := h.calculator.Quote(ctx, roomTypeID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidRange):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, pricing.ErrRoomTypeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if h.cache != nil {
		if body, err := json.Marshal(breakdown); err == nil {
			h.cache.Set(ctx, key, body, h.cacheTTL)
		}
	}

	return c.JSON(http.StatusOK, breakdown)
}

func (h *PricingHandler) Availability(c echo.Context) error {
	roomTypeID, checkIn, checkOut, err := parseDateRange(c)
	if err != nil {
		return err
	}
	if !checkOut.After(checkIn) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "check-out must be after check-in")
	}

	count, err := h.unitRepo.CountAvailable(c.Request().Context(), roomTypeID, checkIn, checkOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		RoomTypeID:     roomTypeID,
		CheckIn:        dto.FormatDate(checkIn),
		CheckOut:       dto.FormatDate(checkOut),
		UnitsAvailable: count,
	})
}
