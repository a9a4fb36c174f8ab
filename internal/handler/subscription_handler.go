package handler

import (
	"net/http"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/ledger"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	store   *store.Client
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
}

func NewSubscriptionHandler(st *store.Client, cat *catalog.Catalog, led *ledger.Ledger) *SubscriptionHandler {
	return &SubscriptionHandler{store: st, catalog: cat, ledger: led}
}

func (h *SubscriptionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/subscription_types", h.ListTypes)
	e.POST("/api/v1/subscription_types", h.CreateType)
	e.PATCH("/api/v1/subscription_types/:id", h.UpdateType)
	e.DELETE("/api/v1/subscription_types/:id", h.DeleteType)

	e.GET("/api/v1/clients/:id/subscriptions", h.ListClientSubscriptions)
	e.POST("/api/v1/clients/:id/subscriptions", h.Purchase)
}

func (h *SubscriptionHandler) ListTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.SubscriptionTypes(c.Request().Context()))
}

func (h *SubscriptionHandler) CreateType(c echo.Context) error {
	var req dto.SubscriptionTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.requireAdmin(c, req.ActorID); err != nil {
		return err
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := h.store.CreateSubscriptionType(c.Request().Context(), models.SubscriptionType{
		Name:     req.Name,
		Sessions: req.Sessions,
		Price:    req.Price,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SubscriptionHandler) UpdateType(c echo.Context) error {
	var req dto.SubscriptionTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.requireAdmin(c, req.ActorID); err != nil {
		return err
	}

	patch := map[string]any{"name": req.Name, "sessions": req.Sessions, "price": req.Price}
	if err := h.store.UpdateSubscriptionType(c.Request().Context(), c.Param("id"), patch); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
}

func (h *SubscriptionHandler) DeleteType(c echo.Context) error {
	if err := h.requireAdmin(c, c.QueryParam("actor_id")); err != nil {
		return err
	}
	if err := h.store.DeleteSubscriptionType(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SubscriptionHandler) ListClientSubscriptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.SubscriptionsByClient(c.Request().Context(), c.Param("id")))
}

func (h *SubscriptionHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	client := h.catalog.UserByID(ctx, clientID)
	if client == nil || client.Role != models.RoleClient {
		return echo.NewHTTPError(http.StatusForbidden, "only clients can purchase subscriptions")
	}

	st := h.catalog.SubscriptionTypeByID(ctx, req.TypeID)
	if st == nil {
		return echo.NewHTTPError(http.StatusNotFound, "subscription type not found")
	}

	sub, err := h.ledger.Purchase(ctx, clientID, *st)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) requireAdmin(c echo.Context, actorID string) error {
	actor := h.catalog.UserByID(c.Request().Context(), actorID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	return nil
}
