package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"shareit/apperr"
	"shareit/model"
	bookingrepo "shareit/repository/booking"
)

type Row = bookingrepo.Row

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)
	ByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*Row, error)
	SetStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id int64) error
	ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time) ([]Row, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time) ([]Row, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type View struct {
	ID     int64        `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status model.Status `json:"status"`
	Item   ItemRef      `json:"item"`
	Booker UserRef      `json:"booker"`
}

// Update is the administrative mutation: only the fields actually
// supplied are applied, and the WAITING-only transition guard of Decide
// does not apply here.
type Update struct {
	ID     int64
	Start  *time.Time
	End    *time.Time
	Status *model.Status
}

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*View, error)
	// Decide approves or rejects a waiting booking. Only the item's
	// owner may decide, and only once: both outcomes are terminal.
	Decide(ctx context.Context, bookingID, callerID int64, approved bool) (*View, error)
	ByID(ctx context.Context, bookingID, callerID int64) (*View, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.State) ([]View, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.State) ([]View, error)
	Update(ctx context.Context, callerID int64, upd Update) (*View, error)
	Delete(ctx context.Context, bookingID int64) error
}

type service struct {
	db       *sqlx.DB
	bookings Repo
	users    UserRepo
	items    ItemRepo
}

func New(db *sqlx.DB, bookings Repo, users UserRepo, items ItemRepo) Service {
	return &service{db: db, bookings: bookings, users: users, items: items}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*View, error) {
	if !end.After(start) {
		return nil, apperr.Invalid("end must be after start")
	}

	booker, err := s.users.ByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", bookerID)
		}
		return nil, err
	}

	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item with id = %d not found", itemID)
		}
		return nil, err
	}

	if !item.Available {
		return nil, apperr.Invalid("item not available")
	}
	if item.OwnerID == bookerID {
		return nil, apperr.Invalid("cannot book own item")
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	return &View{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   ItemRef{ID: item.ID, Name: item.Name},
		Booker: UserRef{ID: booker.ID, Name: booker.Name},
	}, nil
}

func (s *service) Decide(ctx context.Context, bookingID, callerID int64, approved bool) (_ *View, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row, err := s.bookings.ByIDTx(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking with id = %d not found", bookingID)
		}
		return nil, err
	}

	if row.OwnerID != callerID {
		return nil, apperr.Forbidden("only owner may decide")
	}
	if row.Status != model.StatusWaiting {
		return nil, apperr.Invalid("already decided")
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}
	if err = s.bookings.SetStatus(ctx, tx, bookingID, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	row.Status = status
	return rowView(row), nil
}

func (s *service) ByID(ctx context.Context, bookingID, callerID int64) (*View, error) {
	row, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if row.BookerID != callerID && row.OwnerID != callerID {
		return nil, apperr.Forbidden("only the booker or the item's owner may view the booking")
	}
	return rowView(row), nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state model.State) ([]View, error) {
	if err := s.userExists(ctx, bookerID); err != nil {
		return nil, err
	}
	rows, err := s.bookings.ListByBooker(ctx, bookerID, state, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return rowViews(rows), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state model.State) ([]View, error) {
	if err := s.userExists(ctx, ownerID); err != nil {
		return nil, err
	}
	rows, err := s.bookings.ListByOwner(ctx, ownerID, state, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return rowViews(rows), nil
}

func (s *service) Update(ctx context.Context, callerID int64, upd Update) (*View, error) {
	if upd.ID == 0 {
		return nil, apperr.Invalid("id required")
	}

	if err := s.userExists(ctx, callerID); err != nil {
		return nil, err
	}

	row, err := s.byID(ctx, upd.ID)
	if err != nil {
		return nil, err
	}
	if row.BookerID != callerID && row.OwnerID != callerID {
		return nil, apperr.Forbidden("only the booker or the item's owner may update the booking")
	}

	b := &model.Booking{
		ID:       row.ID,
		Start:    row.Start,
		End:      row.End,
		ItemID:   row.ItemID,
		BookerID: row.BookerID,
		Status:   row.Status,
	}
	if upd.Start != nil {
		b.Start = *upd.Start
	}
	if upd.End != nil {
		b.End = *upd.End
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if !b.End.After(b.Start) {
		return nil, apperr.Invalid("end must be after start")
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	row.Start = b.Start
	row.End = b.End
	row.Status = b.Status
	return rowView(row), nil
}

func (s *service) Delete(ctx context.Context, bookingID int64) error {
	if _, err := s.byID(ctx, bookingID); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, bookingID)
}

func (s *service) byID(ctx context.Context, bookingID int64) (*Row, error) {
	row, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking with id = %d not found", bookingID)
		}
		return nil, err
	}
	return row, nil
}

func (s *service) userExists(ctx context.Context, id int64) error {
	if _, err := s.users.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user with id = %d not found", id)
		}
		return err
	}
	return nil
}

func rowView(row *Row) *View {
	return &View{
		ID:     row.ID,
		Start:  row.Start,
		End:    row.End,
		Status: row.Status,
		Item:   ItemRef{ID: row.ItemID, Name: row.ItemName},
		Booker: UserRef{ID: row.BookerID, Name: row.BookerName},
	}
}

func rowViews(rows []Row) []View {
	out := make([]View, 0, len(rows))
	for i := range rows {
		out = append(out, *rowView(&rows[i]))
	}
	return out
}
