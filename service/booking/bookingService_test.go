package bookingsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"shareit/apperr"
	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	"shareit/repository/repotest"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
)

// The decision flow runs inside a transaction, so these tests drive the
// service against a real database rather than mocks.
type fixture struct {
	db     *sqlx.DB
	svc    bookingsvc.Service
	owner  int64
	booker int64
	item   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := repotest.NewDB(t)
	ctx := context.Background()

	owner := &model.User{Name: "owner", Email: "owner@example.com"}
	booker := &model.User{Name: "booker", Email: "booker@example.com"}
	ur := userrepo.New(db)
	require.NoError(t, ur.Create(ctx, owner))
	require.NoError(t, ur.Create(ctx, booker))

	ir := itemrepo.New(db)
	it := &model.Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: owner.ID}
	require.NoError(t, ir.Create(ctx, it))

	return &fixture{
		db:     db,
		svc:    bookingsvc.New(db, bookingrepo.New(db), ur, ir),
		owner:  owner.ID,
		booker: booker.ID,
		item:   it.ID,
	}
}

func (f *fixture) create(t *testing.T) *bookingsvc.View {
	t.Helper()
	start := time.Now().UTC().Add(time.Hour)
	v, err := f.svc.Create(context.Background(), f.booker, f.item, start, start.Add(time.Hour))
	require.NoError(t, err)
	return v
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	v := f.create(t)
	require.NotZero(t, v.ID)
	require.Equal(t, model.StatusWaiting, v.Status)
	require.Equal(t, "Drill", v.Item.Name)
	require.Equal(t, "booker", v.Booker.Name)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(time.Hour)

	// end must come after start
	_, err := f.svc.Create(ctx, f.booker, f.item, start, start)
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = f.svc.Create(ctx, 99, f.item, start, start.Add(time.Hour))
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.svc.Create(ctx, f.booker, 99, start, start.Add(time.Hour))
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// owners cannot book their own items
	_, err = f.svc.Create(ctx, f.owner, f.item, start, start.Add(time.Hour))
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCreate_UnavailableItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ir := itemrepo.New(f.db)
	it, err := ir.ByID(ctx, f.item)
	require.NoError(t, err)
	it.Available = false
	require.NoError(t, ir.Update(ctx, it))

	start := time.Now().UTC().Add(time.Hour)
	_, err = f.svc.Create(ctx, f.booker, f.item, start, start.Add(time.Hour))
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestDecide_Approve(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	v, err := f.svc.Decide(context.Background(), b.ID, f.owner, true)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, v.Status)

	got, err := f.svc.ByID(context.Background(), b.ID, f.owner)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, got.Status)
}

func TestDecide_Reject(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	v, err := f.svc.Decide(context.Background(), b.ID, f.owner, false)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, v.Status)
}

func TestDecide_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	_, err := f.svc.Decide(context.Background(), b.ID, f.booker, true)
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestDecide_Terminal(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	_, err := f.svc.Decide(ctx, b.ID, f.owner, false)
	require.NoError(t, err)

	// a rejected booking cannot be approved afterwards
	_, err = f.svc.Decide(ctx, b.ID, f.owner, true)
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	got, err := f.svc.ByID(ctx, b.ID, f.owner)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, got.Status)
}

func TestDecide_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decide(context.Background(), 42, f.owner, true)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestByID_Authorization(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	stranger := &model.User{Name: "eve", Email: "eve@example.com"}
	require.NoError(t, userrepo.New(f.db).Create(ctx, stranger))

	_, err := f.svc.ByID(ctx, b.ID, f.booker)
	require.NoError(t, err)
	_, err = f.svc.ByID(ctx, b.ID, f.owner)
	require.NoError(t, err)

	_, err = f.svc.ByID(ctx, b.ID, stranger.ID)
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	mine, err := f.svc.ListByBooker(ctx, f.booker, model.StateAll)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, b.ID, mine[0].ID)

	waiting, err := f.svc.ListByBooker(ctx, f.booker, model.StateWaiting)
	require.NoError(t, err)
	require.Len(t, waiting, 1)

	past, err := f.svc.ListByBooker(ctx, f.booker, model.StatePast)
	require.NoError(t, err)
	require.Empty(t, past)

	theirs, err := f.svc.ListByOwner(ctx, f.owner, model.StateAll)
	require.NoError(t, err)
	require.Len(t, theirs, 1)

	_, err = f.svc.ListByBooker(ctx, 99, model.StateAll)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_AppliesSuppliedFields(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	// approve first so the update proves it bypasses the WAITING guard
	_, err := f.svc.Decide(ctx, b.ID, f.owner, true)
	require.NoError(t, err)

	status := model.StatusRejected
	v, err := f.svc.Update(ctx, f.booker, bookingsvc.Update{ID: b.ID, Status: &status})
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, v.Status)
	// untouched fields survive
	require.Equal(t, b.Start.Unix(), v.Start.Unix())
}

func TestUpdate_Validation(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, f.booker, bookingsvc.Update{})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	stranger := &model.User{Name: "eve", Email: "eve@example.com"}
	require.NoError(t, userrepo.New(f.db).Create(ctx, stranger))
	status := model.StatusApproved
	_, err = f.svc.Update(ctx, stranger.ID, bookingsvc.Update{ID: b.ID, Status: &status})
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// shrinking the window below zero is rejected
	bad := b.Start.Add(-time.Hour)
	_, err = f.svc.Update(ctx, f.booker, bookingsvc.Update{ID: b.ID, End: &bad})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, b.ID))

	err := f.svc.Delete(ctx, b.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
