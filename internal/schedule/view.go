// Package schedule holds a denormalized snapshot of sessions, trainers and
// bookings and slices it by filter and page for display.
package schedule

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
)

const defaultPerPage = 6

// Filter is a conjunction of predicates; zero values mean "no constraint".
type Filter struct {
	Date      string // store date layout, matches the local calendar day
	Level     models.Level
	TrainerID string
	Search    string // case-insensitive substring of title or trainer name
}

type View struct {
	store   *store.Client
	catalog *catalog.Catalog
	perPage int

	sessions []models.Session
	trainers []models.User
	bookings []models.Booking

	filter   Filter
	filtered []models.Session
	page     int
}

func NewView(st *store.Client, cat *catalog.Catalog, perPage int) *View {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &View{store: st, catalog: cat, perPage: perPage, page: 1}
}

// Refresh replaces the snapshot and reapplies the current filter. Sessions
// are kept sorted ascending by start time; filtering preserves that order.
func (v *View) Refresh(ctx context.Context) {
	v.sessions = v.catalog.Sessions(ctx)
	v.trainers = v.catalog.Trainers(ctx)
	v.bookings = v.store.Bookings(ctx)

	sort.Slice(v.sessions, func(i, j int) bool {
		return v.sessions[i].DateTime.Before(v.sessions[j].DateTime)
	})
	v.apply()
}

// SetFilter replaces the filter and resets pagination to the first page.
func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.page = 1
	v.apply()
}

func (v *View) apply() {
	v.filtered = v.filtered[:0]
	for _, s := range v.sessions {
		if v.matches(s) {
			v.filtered = append(v.filtered, s)
		}
	}
}

func (v *View) matches(s models.Session) bool {
	f := v.filter

	if f.Date != "" {
		day, err := time.ParseInLocation(models.DateLayout, f.Date, time.Local)
		if err != nil {
			return false
		}
		local := s.DateTime.In(time.Local)
		if local.Year() != day.Year() || local.YearDay() != day.YearDay() {
			return false
		}
	}
	if f.Level != "" && s.Level != f.Level {
		return false
	}
	if f.TrainerID != "" && s.TrainerID != f.TrainerID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		title := strings.ToLower(s.Title)
		trainer := strings.ToLower(v.TrainerName(s.TrainerID))
		if !strings.Contains(title, q) && !strings.Contains(trainer, q) {
			return false
		}
	}
	return true
}

// Page returns the current page of the filtered, ordered sessions.
func (v *View) Page() []models.Session {
	start := (v.page - 1) * v.perPage
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.perPage
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

func (v *View) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if total := v.TotalPages(); n > total {
		n = total
	}
	v.page = n
}

func (v *View) PageNum() int { return v.page }

func (v *View) TotalPages() int {
	if len(v.filtered) == 0 {
		return 1
	}
	return (len(v.filtered) + v.perPage - 1) / v.perPage
}

func (v *View) TotalFiltered() int { return len(v.filtered) }

// Bookings exposes the snapshot for per-session action decisions.
func (v *View) Bookings() []models.Booking { return v.bookings }

// BookedCount counts non-cancelled bookings for a session in the snapshot.
func (v *View) BookedCount(sessionID string) int {
	count := 0
	for _, b := range v.bookings {
		if b.SessionID == sessionID && b.Active() {
			count++
		}
	}
	return count
}

func (v *View) TrainerName(trainerID string) string {
	for _, t := range v.trainers {
		if t.ID == trainerID {
			return t.Name
		}
	}
	return ""
}
