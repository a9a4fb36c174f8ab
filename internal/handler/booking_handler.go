package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/fitbook/gym-service/internal/booking"
	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc     booking.Service
	catalog *catalog.Catalog
	store   *store.Client
}

func NewBookingHandler(svc booking.Service, cat *catalog.Catalog, st *store.Client) *BookingHandler {
	return &BookingHandler{svc: svc, catalog: cat, store: st}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	sessions := e.Group("/api/v1/sessions")
	sessions.POST("/:id/bookings", h.CreateBooking)
	sessions.GET("/:id/bookings", h.ListSessionBookings)
	sessions.DELETE("/:id/bookings/:clientId", h.CancelBooking)

	e.GET("/api/v1/clients/:id/bookings", h.ListClientBookings)
	e.PATCH("/api/v1/bookings/:id/attendance", h.UpdateAttendance)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	sessionID := c.Param("id")

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ClientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	actor := h.catalog.UserByID(c.Request().Context(), req.ClientID)

	result, err := h.svc.Book(c.Request().Context(), actor, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPermissionDenied):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, booking.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, booking.ErrSessionFull):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, booking.ErrAlreadyBooked):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, booking.ErrLedgerWrite):
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	sessionID := c.Param("id")
	clientID := c.Param("clientId")

	actor := h.catalog.UserByID(c.Request().Context(), clientID)
	if actor == nil {
		return echo.NewHTTPError(http.StatusForbidden, "unknown client")
	}

	result, err := h.svc.Cancel(c.Request().Context(), actor, sessionID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"cancelled":     true,
		"credit_failed": result.CreditFailed,
	})
}

func (h *BookingHandler) ListSessionBookings(c echo.Context) error {
	bookings := h.store.BookingsBySchedule(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListClientBookings(c echo.Context) error {
	ctx := c.Request().Context()
	bookings := h.store.BookingsByClient(ctx, c.Param("id"))
	return c.JSON(http.StatusOK, h.denormalize(ctx, bookings))
}

func (h *BookingHandler) UpdateAttendance(c echo.Context) error {
	var req dto.AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := h.catalog.UserByID(c.Request().Context(), req.ActorID)

	err := h.svc.UpdateAttendance(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPermissionDenied):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, booking.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, booking.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(req.Status)})
}

type clientBookingItem struct {
	models.Booking
	SessionTitle string `json:"session_title,omitempty"`
	TrainerName  string `json:"trainer_name,omitempty"`
}

func (h *BookingHandler) denormalize(ctx context.Context, bookings []models.Booking) []clientBookingItem {
	sessions := h.catalog.Sessions(ctx)
	trainers := h.catalog.Trainers(ctx)

	items := make([]clientBookingItem, 0, len(bookings))
	for _, b := range bookings {
		item := clientBookingItem{Booking: b}
		for _, s := range sessions {
			if s.ID != b.SessionID {
				continue
			}
			item.SessionTitle = s.Title
			for _, t := range trainers {
				if t.ID == s.TrainerID {
					item.TrainerName = t.Name
					break
				}
			}
			break
		}
		items = append(items, item)
	}
	return items
}
