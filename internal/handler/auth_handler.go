package handler

import (
	"net/http"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/dto"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/labstack/echo/v4"
)

// AuthHandler fronts the user collection. Credentials are matched in
// plaintext against the store; hardening is delegated to the store owner.
type AuthHandler struct {
	store   *store.Client
	catalog *catalog.Catalog
}

func NewAuthHandler(st *store.Client, cat *catalog.Catalog) *AuthHandler {
	return &AuthHandler{store: st, catalog: cat}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/auth/login", h.Login)
	e.POST("/api/v1/auth/register", h.Register)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Login == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "login and password are required")
	}

	user := h.catalog.FindUser(c.Request().Context(), req.Login, req.Password)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid login or password")
	}

	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Login == "" || req.Password == "" || req.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
	}
	if len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	for _, u := range h.store.Users(c.Request().Context()) {
		if u.Login == req.Login {
			return echo.NewHTTPError(http.StatusConflict, "login already taken")
		}
	}

	created, err := h.store.CreateUser(c.Request().Context(), models.User{
		Login:    req.Login,
		Password: req.Password,
		Role:     models.RoleClient,
		Name:     req.Name,
		Email:    req.Login,
		Phone:    req.Phone,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToUserResponse(created))
}
