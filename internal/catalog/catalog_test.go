package catalog

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/fitbook/gym-service/pkg/database"
	"github.com/fitbook/gym-service/pkg/storeserver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*Catalog, *store.Client) {
	t.Helper()

	db := database.Open("", filepath.Join(t.TempDir(), "store.db"))
	srv, err := storeserver.New(db)
	require.NoError(t, err)

	e := echo.New()
	srv.RegisterRoutes(e)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	st := store.New(ts.URL)
	return New(st), st
}

func TestTrainersAndClients_SplitByRole(t *testing.T) {
	cat, st := newCatalog(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, models.User{Login: "coach", Role: models.RoleTrainer})
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, models.User{Login: "anna", Role: models.RoleClient})
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, models.User{Login: "root", Role: models.RoleAdmin})
	require.NoError(t, err)

	trainers := cat.Trainers(ctx)
	require.Len(t, trainers, 1)
	assert.Equal(t, "coach", trainers[0].Login)

	clients := cat.Clients(ctx)
	require.Len(t, clients, 1)
	assert.Equal(t, "anna", clients[0].Login)
}

func TestTrainerByID_RejectsOtherRoles(t *testing.T) {
	cat, st := newCatalog(t)
	ctx := context.Background()

	trainer, err := st.CreateUser(ctx, models.User{Login: "coach", Role: models.RoleTrainer})
	require.NoError(t, err)
	client, err := st.CreateUser(ctx, models.User{Login: "anna", Role: models.RoleClient})
	require.NoError(t, err)

	assert.NotNil(t, cat.TrainerByID(ctx, trainer.ID))
	assert.Nil(t, cat.TrainerByID(ctx, client.ID))
	assert.Nil(t, cat.TrainerByID(ctx, "ghost"))
}

func TestSubscriptionTypeByID(t *testing.T) {
	cat, st := newCatalog(t)
	ctx := context.Background()

	sessions := 8
	created, err := st.CreateSubscriptionType(ctx, models.SubscriptionType{
		Name: "Standard 8", Sessions: &sessions, Price: 4500,
	})
	require.NoError(t, err)

	found := cat.SubscriptionTypeByID(ctx, created.ID)
	require.NotNil(t, found)
	assert.Equal(t, "Standard 8", found.Name)

	assert.Nil(t, cat.SubscriptionTypeByID(ctx, "nope"))
}

func TestFindUser_ChecksCredentials(t *testing.T) {
	cat, st := newCatalog(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, models.User{
		Login: "anna", Password: "secret1", Role: models.RoleClient,
	})
	require.NoError(t, err)

	assert.NotNil(t, cat.FindUser(ctx, "anna", "secret1"))
	assert.Nil(t, cat.FindUser(ctx, "anna", "wrong"))
	assert.Nil(t, cat.FindUser(ctx, "ghost", "secret1"))
}
