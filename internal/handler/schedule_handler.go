package handler

import (
	"net/http"
	"strconv"

	"github.com/fitbook/gym-service/internal/booking"
	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/schedule"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

type ScheduleHandler struct {
	store   *store.Client
	catalog *catalog.Catalog
	perPage int
}

func NewScheduleHandler(st *store.Client, cat *catalog.Catalog, perPage int) *ScheduleHandler {
	return &ScheduleHandler{store: st, catalog: cat, perPage: perPage}
}

func (h *ScheduleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/schedule", h.GetSchedule)
	e.GET("/api/v1/trainers", h.ListTrainers)
	e.GET("/api/v1/trainers/:id/schedule", h.GetTrainerSchedule)
}

// GetSchedule serves one page of the filtered schedule, each session tagged
// with the action available to the viewer (client_id query, optional).
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	ctx := c.Request().Context()

	view := schedule.NewView(h.store, h.catalog, h.perPage)
	view.Refresh(ctx)
	view.SetFilter(schedule.Filter{
		Date:      c.QueryParam("date"),
		Level:     models.Level(c.QueryParam("level")),
		TrainerID: c.QueryParam("trainer_id"),
		Search:    c.QueryParam("q"),
	})
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		view.SetPage(page)
	}

	var actor *models.User
	if clientID := c.QueryParam("client_id"); clientID != "" {
		actor = h.catalog.UserByID(ctx, clientID)
	}

	bookings := view.Bookings()
	items := make([]dto.ScheduleItemResponse, 0, len(view.Page()))
	for _, s := range view.Page() {
		seats := s.MaxParticipants - view.BookedCount(s.ID)
		if seats < 0 {
			seats = 0 // display clamp only
		}
		items = append(items, dto.ScheduleItemResponse{
			ID:              s.ID,
			Title:           s.Title,
			DateTime:        s.DateTime,
			Duration:        s.Duration,
			Level:           s.Level,
			TrainerID:       s.TrainerID,
			TrainerName:     view.TrainerName(s.TrainerID),
			MaxParticipants: s.MaxParticipants,
			SeatsLeft:       seats,
			Status:          s.Status,
			Action:          booking.ActionFor(actor, s, bookings),
		})
	}

	return c.JSON(http.StatusOK, dto.SchedulePageResponse{
		Items:      items,
		Page:       view.PageNum(),
		TotalPages: view.TotalPages(),
		Total:      view.TotalFiltered(),
	})
}

func (h *ScheduleHandler) ListTrainers(c echo.Context) error {
	trainers := h.catalog.Trainers(c.Request().Context())
	resp := make([]dto.UserResponse, 0, len(trainers))
	for i := range trainers {
		resp = append(resp, dto.ToUserResponse(&trainers[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ScheduleHandler) GetTrainerSchedule(c echo.Context) error {
	ctx := c.Request().Context()

	trainer := h.catalog.TrainerByID(ctx, c.Param("id"))
	if trainer == nil {
		return echo.NewHTTPError(http.StatusNotFound, "trainer not found")
	}
	return c.JSON(http.StatusOK, h.catalog.SessionsByTrainer(ctx, trainer.ID))
}
