package commentrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"shareit/model"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	"shareit/repository/repotest"
	userrepo "shareit/repository/user"
)

func seed(t *testing.T, db *sqlx.DB) (userID, itemID int64) {
	t.Helper()
	ctx := context.Background()

	u := &model.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, userrepo.New(db).Create(ctx, u))

	it := &model.Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: u.ID}
	require.NoError(t, itemrepo.New(db).Create(ctx, it))

	return u.ID, it.ID
}

func TestCreateAndByItem(t *testing.T) {
	db := repotest.NewDB(t)
	r := commentrepo.New(db)
	ctx := context.Background()

	uid, iid := seed(t, db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &model.Comment{Text: "works great", ItemID: iid, AuthorID: uid, Created: base}
	second := &model.Comment{Text: "battery died", ItemID: iid, AuthorID: uid, Created: base.Add(time.Hour)}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))
	require.NotZero(t, first.ID)

	out, err := r.ByItem(ctx, iid)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// oldest first
	require.Equal(t, "works great", out[0].Text)
	require.Equal(t, "battery died", out[1].Text)
	require.Equal(t, "alice", out[0].AuthorName)
}

func TestByItems(t *testing.T) {
	db := repotest.NewDB(t)
	r := commentrepo.New(db)
	ctx := context.Background()

	uid, iid := seed(t, db)
	require.NoError(t, r.Create(ctx, &model.Comment{
		Text: "ok", ItemID: iid, AuthorID: uid, Created: time.Now().UTC(),
	}))

	out, err := r.ByItems(ctx, []int64{iid})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, iid, out[0].ItemID)

	out, err = r.ByItems(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}
