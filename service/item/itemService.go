package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/apperr"
	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
)

type BookingRow = bookingrepo.Row
type CommentRow = commentrepo.Row

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type BookingRepo interface {
	LastForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]BookingRow, error)
	NextForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]BookingRow, error)
}

type CommentRepo interface {
	ByItem(ctx context.Context, itemID int64) ([]CommentRow, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]CommentRow, error)
}

// BookingRef is the short booking projection shown to item owners.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type View struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	OwnerID     int64         `json:"owner_id"`
	RequestID   *int64        `json:"request_id,omitempty"`
	LastBooking *BookingRef   `json:"last_booking,omitempty"`
	NextBooking *BookingRef   `json:"next_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

type Service interface {
	Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, name, description *string, available *bool) (*model.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	// ByID returns the item with its comments; the last and next
	// approved bookings are filled in only for the owner.
	ByID(ctx context.Context, callerID, itemID int64) (*View, error)
	ByOwner(ctx context.Context, ownerID int64) ([]View, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
}

type service struct {
	items    Repo
	users    UserRepo
	bookings BookingRepo
	comments CommentRepo
}

func New(items Repo, users UserRepo, bookings BookingRepo, comments CommentRepo) Service {
	return &service{items: items, users: users, bookings: bookings, comments: comments}
}

func (s *service) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("name must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("description must not be blank")
	}

	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", ownerID)
		}
		return nil, err
	}

	it := &model.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, name, description *string, available *bool) (*model.Item, error) {
	it, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item with id = %d not found", itemID)
		}
		return nil, err
	}

	if it.OwnerID != ownerID {
		return nil, apperr.Forbidden("item with id = %d does not belong to user %d", itemID, ownerID)
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, apperr.Invalid("name must not be blank")
		}
		it.Name = *name
	}
	if description != nil {
		if strings.TrimSpace(*description) == "" {
			return nil, apperr.Invalid("description must not be blank")
		}
		it.Description = *description
	}
	if available != nil {
		it.Available = *available
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	it, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("item with id = %d not found", itemID)
		}
		return err
	}
	if it.OwnerID != ownerID {
		return apperr.Forbidden("only the owner may delete the item")
	}
	return s.items.Delete(ctx, itemID)
}

func (s *service) ByID(ctx context.Context, callerID, itemID int64) (*View, error) {
	it, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item with id = %d not found", itemID)
		}
		return nil, err
	}

	view := newView(*it)

	if it.OwnerID == callerID {
		now := time.Now().UTC()
		last, err := s.bookings.LastForItems(ctx, []int64{itemID}, now)
		if err != nil {
			return nil, err
		}
		if len(last) > 0 {
			view.LastBooking = bookingRef(last[0])
		}

		next, err := s.bookings.NextForItems(ctx, []int64{itemID}, now)
		if err != nil {
			return nil, err
		}
		if len(next) > 0 {
			view.NextBooking = bookingRef(next[0])
		}
	}

	rows, err := s.comments.ByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		view.Comments = append(view.Comments, commentView(row))
	}

	return view, nil
}

func (s *service) ByOwner(ctx context.Context, ownerID int64) ([]View, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", ownerID)
		}
		return nil, err
	}

	items, err := s.items.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	now := time.Now().UTC()

	// Rows come ordered, so the first row seen per item is the most
	// recent past / nearest future booking.
	lastRows, err := s.bookings.LastForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	last := make(map[int64]*BookingRef)
	for _, row := range lastRows {
		if _, ok := last[row.ItemID]; !ok {
			last[row.ItemID] = bookingRef(row)
		}
	}

	nextRows, err := s.bookings.NextForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	next := make(map[int64]*BookingRef)
	for _, row := range nextRows {
		if _, ok := next[row.ItemID]; !ok {
			next[row.ItemID] = bookingRef(row)
		}
	}

	commentRows, err := s.comments.ByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	comments := make(map[int64][]CommentView)
	for _, row := range commentRows {
		comments[row.ItemID] = append(comments[row.ItemID], commentView(row))
	}

	out := make([]View, 0, len(items))
	for _, it := range items {
		view := newView(it)
		view.LastBooking = last[it.ID]
		view.NextBooking = next[it.ID]
		if cs := comments[it.ID]; cs != nil {
			view.Comments = cs
		}
		out = append(out, *view)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	// Blank text yields an empty result, not the full catalog.
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func newView(it model.Item) *View {
	return &View{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		Comments:    make([]CommentView, 0),
	}
}

func bookingRef(row BookingRow) *BookingRef {
	return &BookingRef{ID: row.ID, BookerID: row.BookerID, Start: row.Start, End: row.End}
}

func commentView(row CommentRow) CommentView {
	return CommentView{ID: row.ID, Text: row.Text, AuthorName: row.AuthorName, Created: row.Created}
}
