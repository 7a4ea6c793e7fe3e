package userrepo_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/repository/repotest"
	userrepo "shareit/repository/user"
)

func TestCreateAndByID(t *testing.T) {
	r := userrepo.New(repotest.NewDB(t))
	ctx := context.Background()

	u := &model.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, r.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := r.ByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Name)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestByID_NotFound(t *testing.T) {
	r := userrepo.New(repotest.NewDB(t))

	_, err := r.ByID(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdate(t *testing.T) {
	r := userrepo.New(repotest.NewDB(t))
	ctx := context.Background()

	u := &model.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, r.Create(ctx, u))

	u.Name = "alicia"
	u.Email = "alicia@example.com"
	require.NoError(t, r.Update(ctx, u))

	got, err := r.ByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alicia", got.Name)
	require.Equal(t, "alicia@example.com", got.Email)
}

func TestDeleteAndList(t *testing.T) {
	r := userrepo.New(repotest.NewDB(t))
	ctx := context.Background()

	a := &model.User{Name: "a", Email: "a@example.com"}
	b := &model.User{Name: "b", Email: "b@example.com"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	require.NoError(t, r.Delete(ctx, a.ID))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, b.ID, all[0].ID)
}

func TestExistsByEmail(t *testing.T) {
	r := userrepo.New(repotest.NewDB(t))
	ctx := context.Background()

	u := &model.User{Name: "alice", Email: "Alice@Example.com"}
	require.NoError(t, r.Create(ctx, u))

	// case-insensitive
	taken, err := r.ExistsByEmail(ctx, "alice@example.COM", 0)
	require.NoError(t, err)
	require.True(t, taken)

	// the holder itself is excluded
	taken, err = r.ExistsByEmail(ctx, "alice@example.com", u.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = r.ExistsByEmail(ctx, "nobody@example.com", 0)
	require.NoError(t, err)
	require.False(t, taken)
}
