package commentsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/apperr"
	"shareit/model"
	commentsvc "shareit/service/comment"
)

type commentRepoMock struct {
	createFn func(ctx context.Context, c *model.Comment) error
}

func (m *commentRepoMock) Create(ctx context.Context, c *model.Comment) error {
	return m.createFn(ctx, c)
}

type userRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

type itemRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Item, error)
}

func (m *itemRepoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}

type bookingRepoMock struct {
	hasFinishedFn func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

func (m *bookingRepoMock) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return m.hasFinishedFn(ctx, bookerID, itemID, now)
}

func TestAdd_BlankText(t *testing.T) {
	s := commentsvc.New(&commentRepoMock{}, &userRepoMock{}, &itemRepoMock{}, &bookingRepoMock{})

	_, err := s.Add(context.Background(), 1, 2, "   ")
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestAdd_AuthorNotFound(t *testing.T) {
	s := commentsvc.New(&commentRepoMock{},
		&userRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, sql.ErrNoRows
		}},
		&itemRepoMock{}, &bookingRepoMock{})

	_, err := s.Add(context.Background(), 1, 2, "great")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAdd_NoFinishedRental(t *testing.T) {
	s := commentsvc.New(&commentRepoMock{},
		&userRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "alice"}, nil
		}},
		&itemRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id}, nil
		}},
		&bookingRepoMock{hasFinishedFn: func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
			return false, nil
		}})

	_, err := s.Add(context.Background(), 1, 2, "great")
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestAdd_Success(t *testing.T) {
	s := commentsvc.New(
		&commentRepoMock{createFn: func(ctx context.Context, c *model.Comment) error {
			c.ID = 5
			return nil
		}},
		&userRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "alice"}, nil
		}},
		&itemRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id}, nil
		}},
		&bookingRepoMock{hasFinishedFn: func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
			return true, nil
		}})

	v, err := s.Add(context.Background(), 1, 2, "great")
	require.NoError(t, err)
	require.Equal(t, int64(5), v.ID)
	require.Equal(t, "alice", v.AuthorName)
	require.False(t, v.Created.IsZero())
}
