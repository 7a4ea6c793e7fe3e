package commentsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/apperr"
	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type BookingRepo interface {
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type View struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type Service interface {
	// Add posts feedback on an item; the author must have completed an
	// approved rental of it.
	Add(ctx context.Context, authorID, itemID int64, text string) (*View, error)
}

type service struct {
	comments Repo
	users    UserRepo
	items    ItemRepo
	bookings BookingRepo
}

func New(comments Repo, users UserRepo, items ItemRepo, bookings BookingRepo) Service {
	return &service{comments: comments, users: users, items: items, bookings: bookings}
}

func (s *service) Add(ctx context.Context, authorID, itemID int64, text string) (*View, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Invalid("text must not be blank")
	}

	author, err := s.users.ByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", authorID)
		}
		return nil, err
	}

	if _, err := s.items.ByID(ctx, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item with id = %d not found", itemID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	finished, err := s.bookings.HasFinished(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, apperr.Invalid("must have completed a rental to comment")
	}

	c := &model.Comment{Text: text, ItemID: itemID, AuthorID: authorID, Created: now}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return &View{ID: c.ID, Text: c.Text, AuthorName: author.Name, Created: c.Created}, nil
}
