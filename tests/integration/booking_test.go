//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fitbook/gym-service/internal/booking"
	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/handler"
	"github.com/fitbook/gym-service/internal/ledger"
	"github.com/fitbook/gym-service/internal/middleware"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/fitbook/gym-service/pkg/database"
	"github.com/fitbook/gym-service/pkg/storeserver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// app wires the whole service against an embedded store, the same way
// main.go does, minus RabbitMQ.
type app struct {
	api   *echo.Echo
	store *store.Client
}

func newApp(t *testing.T) *app {
	t.Helper()

	db := database.Open("", filepath.Join(t.TempDir(), "store.db"))
	srv, err := storeserver.New(db)
	require.NoError(t, err)

	se := echo.New()
	srv.RegisterRoutes(se)
	ts := httptest.NewServer(se)
	t.Cleanup(ts.Close)

	st := store.New(ts.URL)
	cat := catalog.New(st)
	led := ledger.New(st)
	engine := booking.NewEngine(st, cat, led, nil)

	api := echo.New()
	api.HTTPErrorHandler = middleware.ErrorHandler
	handler.NewAuthHandler(st, cat).RegisterRoutes(api)
	handler.NewScheduleHandler(st, cat, 6).RegisterRoutes(api)
	handler.NewSessionHandler(st, cat).RegisterRoutes(api)
	handler.NewBookingHandler(engine, cat, st).RegisterRoutes(api)
	handler.NewSubscriptionHandler(st, cat, led).RegisterRoutes(api)
	handler.NewInboxHandler(st, cat).RegisterRoutes(api)

	return &app{api: api, store: st}
}

func (a *app) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.api.ServeHTTP(rec, req)
	return rec
}

func (a *app) seedClient(t *testing.T, login string) *models.User {
	t.Helper()
	u, err := a.store.CreateUser(context.Background(), models.User{
		Login: login, Password: "secret1", Role: models.RoleClient, Name: login,
	})
	require.NoError(t, err)
	return u
}

func (a *app) seedSession(t *testing.T, trainerID string, capacity int) *models.Session {
	t.Helper()
	s, err := a.store.CreateSchedule(context.Background(), models.Session{
		Title: "Yoga", DateTime: time.Now().Add(24 * time.Hour), Duration: 60,
		Level: models.LevelBeginner, MaxParticipants: capacity,
		TrainerID: trainerID, Status: models.SessionOpen,
	})
	require.NoError(t, err)
	return s
}

func TestBookingLifecycle(t *testing.T) {
	a := newApp(t)
	client := a.seedClient(t, "anna")
	trainer, err := a.store.CreateUser(context.Background(), models.User{
		Login: "coach", Role: models.RoleTrainer, Name: "Coach",
	})
	require.NoError(t, err)
	session := a.seedSession(t, trainer.ID, 5)

	// First booking issues the welcome gift and debits it.
	rec := a.do(http.MethodPost, "/api/v1/sessions/"+session.ID+"/bookings",
		`{"client_id":"`+client.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, true, created["gift_issued"])
	assert.Equal(t, float64(9), created["sessions_left"])

	// Rebooking the same session conflicts.
	rec = a.do(http.MethodPost, "/api/v1/sessions/"+session.ID+"/bookings",
		`{"client_id":"`+client.ID+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The schedule shows the cancel action for the booked client.
	rec = a.do(http.MethodGet, "/api/v1/schedule?client_id="+client.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	items := page["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "cancel", items[0].(map[string]any)["action"])

	// Cancelling deletes the row and restores the session.
	rec = a.do(http.MethodDelete, "/api/v1/sessions/"+session.ID+"/bookings/"+client.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	subs := a.store.SubscriptionsByClient(context.Background(), client.ID)
	require.Len(t, subs, 1)
	assert.Equal(t, 10, subs[0].SessionsLeft)
	assert.Empty(t, a.store.BookingsByClient(context.Background(), client.ID))
}

func TestCapacityEnforcedAcrossClients(t *testing.T) {
	a := newApp(t)
	trainer, err := a.store.CreateUser(context.Background(), models.User{
		Login: "coach", Role: models.RoleTrainer,
	})
	require.NoError(t, err)
	session := a.seedSession(t, trainer.ID, 2)

	codes := map[int]int{}
	for _, login := range []string{"c1", "c2", "c3", "c4"} {
		u := a.seedClient(t, login)
		rec := a.do(http.MethodPost, "/api/v1/sessions/"+session.ID+"/bookings",
			`{"client_id":"`+u.ID+`"}`)
		codes[rec.Code]++
	}

	assert.Equal(t, 2, codes[http.StatusCreated])
	assert.Equal(t, 2, codes[http.StatusConflict])
}

func TestLoginAndRegister(t *testing.T) {
	a := newApp(t)
	a.seedClient(t, "anna")

	rec := a.do(http.MethodPost, "/api/v1/auth/login", `{"login":"anna","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = a.do(http.MethodPost, "/api/v1/auth/login", `{"login":"anna","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/api/v1/auth/register",
		`{"name":"Boris","login":"boris","password":"secret1","phone":"+100200300"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate login rejected.
	rec = a.do(http.MethodPost, "/api/v1/auth/register",
		`{"name":"Boris","login":"boris","password":"secret1","phone":"+100200300"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPurchaseFlow(t *testing.T) {
	a := newApp(t)
	client := a.seedClient(t, "anna")
	admin, err := a.store.CreateUser(context.Background(), models.User{
		Login: "root", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	rec := a.do(http.MethodPost, "/api/v1/subscription_types",
		`{"actor_id":"`+admin.ID+`","name":"Standard 8","sessions":8,"price":4500}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))

	rec = a.do(http.MethodPost, "/api/v1/clients/"+client.ID+"/subscriptions",
		`{"type_id":"`+st["id"].(string)+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	subs := a.store.SubscriptionsByClient(context.Background(), client.ID)
	require.Len(t, subs, 1)
	assert.Equal(t, 8, subs[0].SessionsLeft)
	assert.Equal(t, "Standard 8", subs[0].Type)
}
