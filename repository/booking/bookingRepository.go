package bookingrepo

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"shareit/model"
)

var dialect = goqu.Dialect("postgres")

// Row is a booking joined with its item and booker, enough to build a
// response and run authorization checks without extra lookups.
type Row struct {
	ID         int64        `db:"id"`
	Start      time.Time    `db:"start_date"`
	End        time.Time    `db:"end_date"`
	Status     model.Status `db:"status"`
	ItemID     int64        `db:"item_id"`
	ItemName   string       `db:"item_name"`
	OwnerID    int64        `db:"owner_id"`
	BookerID   int64        `db:"booker_id"`
	BookerName string       `db:"booker_name"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)
	// ByIDTx reads a booking inside the caller's transaction, for
	// check-then-write sequences like deciding a booking.
	ByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*Row, error)
	SetStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id int64) error
	ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time) ([]Row, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time) ([]Row, error)
	// HasFinished reports whether the booker has an APPROVED booking on
	// the item that ended before now.
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	// LastForItems returns APPROVED bookings ended before now for the
	// given items, most recent first.
	LastForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]Row, error)
	// NextForItems returns APPROVED bookings starting after now for the
	// given items, soonest first.
	NextForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]Row, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings(start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
}

const rowQuery = `
	SELECT b.id, b.start_date, b.end_date, b.status,
	       b.item_id, i.name AS item_name, i.owner_id,
	       b.booker_id, u.name AS booker_name
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (r *repo) ByID(ctx context.Context, id int64) (*Row, error) {
	row := &Row{}
	const q = rowQuery + `
	WHERE b.id = $1`
	if err := r.db.GetContext(ctx, row, q, id); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) ByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*Row, error) {
	row := &Row{}
	const q = rowQuery + `
	WHERE b.id = $1`
	if err := tx.GetContext(ctx, row, q, id); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) SetStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) Update(ctx context.Context, b *model.Booking) error {
	const q = `
		UPDATE bookings
		SET start_date = $2, end_date = $3, status = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Start, b.End, b.Status)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM bookings WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time) ([]Row, error) {
	return r.list(ctx, goqu.I("b.booker_id").Eq(bookerID), state, now)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time) ([]Row, error) {
	return r.list(ctx, goqu.I("i.owner_id").Eq(ownerID), state, now)
}

func (r *repo) list(ctx context.Context, subject goqu.Expression, state model.State, now time.Time) ([]Row, error) {
	pred, err := StatePredicate(state, now)
	if err != nil {
		return nil, err
	}

	where := []goqu.Expression{subject}
	if pred != nil {
		where = append(where, pred)
	}

	q, args, err := dialect.From(goqu.T("bookings").As("b")).Prepared(true).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id").As("id"),
			goqu.I("b.start_date").As("start_date"),
			goqu.I("b.end_date").As("end_date"),
			goqu.I("b.status").As("status"),
			goqu.I("b.item_id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.owner_id").As("owner_id"),
			goqu.I("b.booker_id").As("booker_id"),
			goqu.I("u.name").As("booker_name"),
		).
		Where(where...).
		Order(goqu.I("b.start_date").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var out []Row
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists bool
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booker_id = $1 AND item_id = $2
			AND status = 'APPROVED' AND end_date < $3
		)`
	if err := r.db.GetContext(ctx, &exists, q, bookerID, itemID, now); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repo) LastForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]Row, error) {
	return r.neighbors(ctx, itemIDs, goqu.I("b.end_date").Lt(now), goqu.I("b.end_date").Desc())
}

func (r *repo) NextForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]Row, error) {
	return r.neighbors(ctx, itemIDs, goqu.I("b.start_date").Gt(now), goqu.I("b.start_date").Asc())
}

func (r *repo) neighbors(ctx context.Context, itemIDs []int64, pred goqu.Expression, order exp.OrderedExpression) ([]Row, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	q, args, err := dialect.From(goqu.T("bookings").As("b")).Prepared(true).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id").As("id"),
			goqu.I("b.start_date").As("start_date"),
			goqu.I("b.end_date").As("end_date"),
			goqu.I("b.status").As("status"),
			goqu.I("b.item_id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.owner_id").As("owner_id"),
			goqu.I("b.booker_id").As("booker_id"),
			goqu.I("u.name").As("booker_name"),
		).
		Where(
			goqu.I("b.item_id").In(itemIDs),
			goqu.I("b.status").Eq(string(model.StatusApproved)),
			pred,
		).
		Order(order).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var out []Row
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
