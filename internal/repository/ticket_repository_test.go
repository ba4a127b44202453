package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/testutil"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepo(testutil.NewDB(t))
	ctx := context.Background()
	name := "Asha Rao"
	age := 31

	u, err := repo.Create(ctx, NewUser{Email: "  Asha@Example.com ", Password: "s3cret!", FullName: &name, Age: &age, Role: model.RoleCustomer}, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "asha@example.com", u.Email)

	byEmail, err := repo.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	require.NotNil(t, byEmail.FullName)
	assert.Equal(t, name, *byEmail.FullName)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, byID.Role)
	assert.NotEqual(t, "s3cret!", byID.PasswordHash)

	_, err = repo.Create(ctx, NewUser{Email: "asha@example.com", Password: "x", Role: model.RoleCustomer}, bcrypt.MinCost)
	assert.True(t, errors.Is(err, model.ErrEmailExists))

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestTicketCreateAndList(t *testing.T) {
	db := testutil.Seeded(t)
	users := NewUserRepo(db)
	tickets := NewTicketRepo(db)
	ctx := context.Background()

	u, err := users.Create(ctx, NewUser{Email: "p@example.com", Password: "pw", Role: model.RoleCustomer}, bcrypt.MinCost)
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, train := range []string{"12951", "11078"} {
		tx, err := tickets.DB().BeginTx(ctx, nil)
		require.NoError(t, err)
		tk := &model.Ticket{
			UserID: u.ID, TrainNumber: train, Name: "Passenger", Age: 40,
			AadharNumber: "123412341234", Class: "SL", Price: 471,
			BookedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, tickets.CreateTx(ctx, tx, tk))
		require.NoError(t, tx.Commit())
		assert.NotZero(t, tk.ID)
	}

	list, err := tickets.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "11078", list[0].TrainNumber)
	require.NotNil(t, list[0].Train)
	assert.Equal(t, "Jhelum Express", *list[0].Train.TrainName)
	assert.True(t, list[1].BookedAt.Equal(base))

	empty, err := tickets.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
