// Package storeserver is a minimal JSON document store speaking the same
// REST dialect the service expects from its remote store: collection listing
// with field-equality query filters, POST with server-assigned ids, PATCH
// with merge semantics and hard DELETE. It backs development setups and the
// integration tests; production deployments point STORE_URL at the real
// store instead.
package storeserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var collections = map[string]bool{
	"schedules":          true,
	"bookings":           true,
	"subscriptions":      true,
	"subscription_types": true,
	"users":              true,
	"feedbacks":          true,
	"notifications":      true,
}

// Document is one stored JSON object. The body keeps the full document
// including its id, so responses are a straight passthrough.
type Document struct {
	ID         string `gorm:"primaryKey"`
	Collection string `gorm:"index:idx_documents_collection"`
	Body       []byte
}

type Server struct {
	db *gorm.DB
	mu sync.Mutex // serializes read-modify-write on PATCH
}

func New(db *gorm.DB) (*Server, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}
	return &Server{db: db}, nil
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/:collection", s.list)
	e.POST("/:collection", s.create)
	e.GET("/:collection/:id", s.get)
	e.PATCH("/:collection/:id", s.patch)
	e.PUT("/:collection/:id", s.replace)
	e.DELETE("/:collection/:id", s.remove)
}

func (s *Server) list(c echo.Context) error {
	collection, err := s.collection(c)
	if err != nil {
		return err
	}

	var docs []Document
	if err := s.db.Where("collection = ?", collection).Order("id").Find(&docs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		var m map[string]any
		if err := json.Unmarshal(doc.Body, &m); err != nil {
			continue
		}
		if matchesQuery(m, c.QueryParams()) {
			items = append(items, m)
		}
	}

	if key := c.QueryParam("_sort"); key != "" {
		desc := strings.EqualFold(c.QueryParam("_order"), "desc")
		sort.SliceStable(items, func(i, j int) bool {
			a, b := stringify(items[i][key]), stringify(items[j][key])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	return c.JSON(http.StatusOK, items)
}

func (s *Server) create(c echo.Context) error {
	collection, err := s.collection(c)
	if err != nil {
		return err
	}

	var m map[string]any
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	id := uuid.NewString()
	m["id"] = id

	body, err := json.Marshal(m)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc := Document{ID: id, Collection: collection, Body: body}
	if err := s.db.Create(&doc).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, m)
}

func (s *Server) get(c echo.Context) error {
	doc, err := s.load(c)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, doc.Body)
}

func (s *Server) patch(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(c)
	if err != nil {
		return err
	}

	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	var m map[string]any
	if err := json.Unmarshal(doc.Body, &m); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		m[k] = v
	}

	body, err := json.Marshal(m)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := s.db.Model(&Document{}).Where("id = ?", doc.ID).Update("body", body).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, m)
}

func (s *Server) replace(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(c)
	if err != nil {
		return err
	}

	var m map[string]any
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	m["id"] = doc.ID

	body, err := json.Marshal(m)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := s.db.Model(&Document{}).Where("id = ?", doc.ID).Update("body", body).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, m)
}

func (s *Server) remove(c echo.Context) error {
	doc, err := s.load(c)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&Document{}, "id = ?", doc.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

func (s *Server) collection(c echo.Context) (string, error) {
	name := c.Param("collection")
	if !collections[name] {
		return "", echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}
	return name, nil
}

func (s *Server) load(c echo.Context) (*Document, error) {
	collection, err := s.collection(c)
	if err != nil {
		return nil, err
	}

	var doc Document
	err = s.db.Where("collection = ? AND id = ?", collection, c.Param("id")).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return &doc, nil
}

// matchesQuery applies field-equality filters; underscore-prefixed params are
// store directives, not filters. Values compare stringified, so numeric and
// string ids behave the same.
func matchesQuery(doc map[string]any, query map[string][]string) bool {
	for key, values := range query {
		if strings.HasPrefix(key, "_") || len(values) == 0 {
			continue
		}
		if stringify(doc[key]) != values[0] {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}
