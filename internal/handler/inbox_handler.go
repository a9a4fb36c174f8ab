package handler

import (
	"net/http"
	"time"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

// InboxHandler covers the message surfaces: client feedback to staff and
// notifications from staff to users.
type InboxHandler struct {
	store   *store.Client
	catalog *catalog.Catalog
}

func NewInboxHandler(st *store.Client, cat *catalog.Catalog) *InboxHandler {
	return &InboxHandler{store: st, catalog: cat}
}

func (h *InboxHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/feedbacks", h.CreateFeedback)
	e.GET("/api/v1/clients/:id/feedbacks", h.ListClientFeedbacks)

	e.GET("/api/v1/users/:id/notifications", h.ListNotifications)
	e.PATCH("/api/v1/notifications/:id/read", h.MarkRead)
	e.POST("/api/v1/notifications/broadcast", h.Broadcast)
}

func (h *InboxHandler) CreateFeedback(c echo.Context) error {
	var req dto.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ClientID == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id and message are required")
	}

	created, err := h.store.CreateFeedback(c.Request().Context(), models.Feedback{
		ClientID: req.ClientID,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   models.FeedbackPending,
		DateSent: time.Now(),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *InboxHandler) ListClientFeedbacks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.FeedbacksByClient(c.Request().Context(), c.Param("id")))
}

func (h *InboxHandler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.NotificationsByUser(c.Request().Context(), c.Param("id")))
}

func (h *InboxHandler) MarkRead(c echo.Context) error {
	if err := h.store.MarkNotificationRead(c.Request().Context(), c.Param("id"), true); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Broadcast stores one notification per user, the admin announcement flow.
func (h *InboxHandler) Broadcast(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	actor := h.catalog.UserByID(ctx, req.ActorID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}

	sent := 0
	for _, u := range h.store.Users(ctx) {
		_, err := h.store.CreateNotification(ctx, models.Notification{
			RecipientID: u.ID,
			Message:     req.Message,
			DateSent:    time.Now(),
		})
		if err == nil {
			sent++
		}
	}

	return c.JSON(http.StatusOK, map[string]int{"sent": sent})
}
