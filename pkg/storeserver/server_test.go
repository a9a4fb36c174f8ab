package storeserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitbook/gym-service/pkg/database"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := database.Open("", filepath.Join(t.TempDir(), "store.db"))
	srv, err := New(db)
	require.NoError(t, err)

	e := echo.New()
	srv.RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestCreate_AssignsID(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/users", `{"login":"anna","role":"client"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	doc := decode(t, rec)
	assert.NotEmpty(t, doc["id"])
	assert.Equal(t, "anna", doc["login"])
}

func TestGet_RoundTrips(t *testing.T) {
	e := newServer(t)

	created := decode(t, do(e, http.MethodPost, "/users", `{"login":"anna"}`))
	id := created["id"].(string)

	rec := do(e, http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anna", decode(t, rec)["login"])
}

func TestGet_UnknownDocument(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/users/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownCollection(t *testing.T) {
	e := newServer(t)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/secrets", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/secrets", `{}`).Code)
}

func TestList_FieldEqualityFilters(t *testing.T) {
	e := newServer(t)

	do(e, http.MethodPost, "/bookings", `{"id_client":"c1","id_schedule":"s1"}`)
	do(e, http.MethodPost, "/bookings", `{"id_client":"c1","id_schedule":"s2"}`)
	do(e, http.MethodPost, "/bookings", `{"id_client":"c2","id_schedule":"s1"}`)

	rec := do(e, http.MethodGet, "/bookings?id_client=c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	rec = do(e, http.MethodGet, "/bookings?id_client=c1&id_schedule=s2", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "s2", items[0]["id_schedule"])
}

func TestList_SortDirective(t *testing.T) {
	e := newServer(t)

	do(e, http.MethodPost, "/notifications", `{"id_user":"u1","date_sent":"2026-01-02"}`)
	do(e, http.MethodPost, "/notifications", `{"id_user":"u1","date_sent":"2026-01-03"}`)
	do(e, http.MethodPost, "/notifications", `{"id_user":"u1","date_sent":"2026-01-01"}`)

	rec := do(e, http.MethodGet, "/notifications?_sort=date_sent&_order=desc", "")
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "2026-01-03", items[0]["date_sent"])
	assert.Equal(t, "2026-01-01", items[2]["date_sent"])
}

func TestPatch_MergesAndKeepsID(t *testing.T) {
	e := newServer(t)

	created := decode(t, do(e, http.MethodPost, "/subscriptions", `{"id_client":"c1","sessions_left":10}`))
	id := created["id"].(string)

	rec := do(e, http.MethodPatch, "/subscriptions/"+id, `{"sessions_left":9,"id":"hijack"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decode(t, do(e, http.MethodGet, "/subscriptions/"+id, ""))
	assert.Equal(t, float64(9), doc["sessions_left"])
	assert.Equal(t, "c1", doc["id_client"]) // untouched fields survive
	assert.Equal(t, id, doc["id"])
}

func TestPut_ReplacesDocument(t *testing.T) {
	e := newServer(t)

	created := decode(t, do(e, http.MethodPost, "/schedules", `{"title":"Yoga","duration":60}`))
	id := created["id"].(string)

	rec := do(e, http.MethodPut, "/schedules/"+id, `{"title":"Pilates"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decode(t, do(e, http.MethodGet, "/schedules/"+id, ""))
	assert.Equal(t, "Pilates", doc["title"])
	_, kept := doc["duration"]
	assert.False(t, kept)
	assert.Equal(t, id, doc["id"])
}

func TestDelete_RemovesDocument(t *testing.T) {
	e := newServer(t)

	created := decode(t, do(e, http.MethodPost, "/bookings", `{"id_client":"c1"}`))
	id := created["id"].(string)

	assert.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/bookings/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/bookings/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/bookings/"+id, "").Code)
}

func TestList_NumericFiltersCompareStringified(t *testing.T) {
	e := newServer(t)

	do(e, http.MethodPost, "/schedules", `{"title":"A","duration":60}`)
	do(e, http.MethodPost, "/schedules", `{"title":"B","duration":90}`)

	rec := do(e, http.MethodGet, "/schedules?duration=60", "")
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0]["title"])
}
