// Package catalog provides read-only access to trainers, sessions and
// subscription-type offerings. It inherits the store's fallback-read policy.
package catalog

import (
	"context"

	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
)

type Catalog struct {
	store *store.Client
}

func New(st *store.Client) *Catalog {
	return &Catalog{store: st}
}

func (c *Catalog) Sessions(ctx context.Context) []models.Session {
	return c.store.Schedules(ctx)
}

func (c *Catalog) SessionByID(ctx context.Context, id string) *models.Session {
	return c.store.ScheduleByID(ctx, id)
}

func (c *Catalog) SessionsByTrainer(ctx context.Context, trainerID string) []models.Session {
	return c.store.SchedulesByTrainer(ctx, trainerID)
}

func (c *Catalog) Trainers(ctx context.Context) []models.User {
	return c.store.UsersByRole(ctx, models.RoleTrainer)
}

func (c *Catalog) Clients(ctx context.Context) []models.User {
	return c.store.UsersByRole(ctx, models.RoleClient)
}

// TrainerByID resolves a user id only if it belongs to a trainer.
func (c *Catalog) TrainerByID(ctx context.Context, id string) *models.User {
	u := c.store.UserByID(ctx, id)
	if u == nil || u.Role != models.RoleTrainer {
		return nil
	}
	return u
}

func (c *Catalog) UserByID(ctx context.Context, id string) *models.User {
	return c.store.UserByID(ctx, id)
}

func (c *Catalog) FindUser(ctx context.Context, login, password string) *models.User {
	return c.store.FindUser(ctx, login, password)
}

func (c *Catalog) SubscriptionTypes(ctx context.Context) []models.SubscriptionType {
	return c.store.SubscriptionTypes(ctx)
}

func (c *Catalog) SubscriptionTypeByID(ctx context.Context, id string) *models.SubscriptionType {
	for _, st := range c.store.SubscriptionTypes(ctx) {
		if st.ID == id {
			return &st
		}
	}
	return nil
}
