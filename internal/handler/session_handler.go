package handler

import (
	"net/http"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

// SessionHandler covers the trainer/admin side of the schedule: creating,
// editing and removing sessions, plus the public seats-left status.
type SessionHandler struct {
	store   *store.Client
	catalog *catalog.Catalog
}

func NewSessionHandler(st *store.Client, cat *catalog.Catalog) *SessionHandler {
	return &SessionHandler{store: st, catalog: cat}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	sessions := e.Group("/api/v1/sessions")
	sessions.GET("/:id/status", h.GetStatus)
	sessions.POST("", h.Create)
	sessions.PATCH("/:id", h.Update)
	sessions.DELETE("/:id", h.Delete)
}

func (h *SessionHandler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	session := h.catalog.SessionByID(ctx, c.Param("id"))
	if session == nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	booked := 0
	for _, b := range h.store.BookingsBySchedule(ctx, session.ID) {
		if b.Active() {
			booked++
		}
	}

	return c.JSON(http.StatusOK, dto.SessionStatusResponse{
		ID:              session.ID,
		Title:           session.Title,
		DateTime:        session.DateTime,
		Level:           session.Level,
		MaxParticipants: session.MaxParticipants,
		Booked:          booked,
		SeatsAvailable:  session.MaxParticipants - booked,
		Status:          session.Status,
	})
}

func (h *SessionHandler) Create(c echo.Context) error {
	var req dto.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := h.catalog.UserByID(c.Request().Context(), req.ActorID)
	if actor == nil || (actor.Role != models.RoleTrainer && actor.Role != models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "only trainers and admins can manage sessions")
	}

	trainerID := req.TrainerID
	if actor.Role == models.RoleTrainer {
		// Trainers always create sessions for themselves.
		trainerID = actor.ID
	}
	if req.Title == "" || req.MaxParticipants < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "title and a positive max_participants are required")
	}

	status := req.Status
	if status == "" {
		status = models.SessionOpen
	}

	created, err := h.store.CreateSchedule(c.Request().Context(), models.Session{
		Title:           req.Title,
		DateTime:        req.DateTime,
		Duration:        req.Duration,
		Level:           req.Level,
		MaxParticipants: req.MaxParticipants,
		TrainerID:       trainerID,
		Status:          status,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *SessionHandler) Update(c echo.Context) error {
	var req dto.UpdateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.authorize(c, req.ActorID)
	if err != nil {
		return err
	}

	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.DateTime != nil {
		patch["date_time"] = *req.DateTime
	}
	if req.Duration != nil {
		patch["duration"] = *req.Duration
	}
	if req.Level != nil {
		patch["level"] = *req.Level
	}
	if req.MaxParticipants != nil {
		patch["max_participants"] = *req.MaxParticipants
	}
	if req.TrainerID != nil {
		patch["id_trainer"] = *req.TrainerID
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if len(patch) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	if err := h.store.UpdateSchedule(c.Request().Context(), session.ID, patch); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"id": session.ID})
}

func (h *SessionHandler) Delete(c echo.Context) error {
	session, err := h.authorize(c, c.QueryParam("actor_id"))
	if err != nil {
		return err
	}

	if err := h.store.DeleteSchedule(c.Request().Context(), session.ID); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// authorize loads the target session and checks the actor may edit it:
// admins always, trainers only their own sessions.
func (h *SessionHandler) authorize(c echo.Context, actorID string) (*models.Session, error) {
	ctx := c.Request().Context()

	session := h.catalog.SessionByID(ctx, c.Param("id"))
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	actor := h.catalog.UserByID(ctx, actorID)
	switch {
	case actor == nil:
		return nil, echo.NewHTTPError(http.StatusForbidden, "unknown actor")
	case actor.Role == models.RoleAdmin:
		return session, nil
	case actor.Role == models.RoleTrainer && session.TrainerID == actor.ID:
		return session, nil
	default:
		return nil, echo.NewHTTPError(http.StatusForbidden, "not allowed to edit this session")
	}
}
