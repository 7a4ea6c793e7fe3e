package itemrepo

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"shareit/model"
)

var dialect = goqu.Dialect("postgres")

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	// Search matches text against name and description of available
	// items, case-insensitively.
	Search(ctx context.Context, text string) ([]model.Item, error)
	ByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const itemCols = `id, name, description, available, owner_id, request_id`

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items(name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	it := &model.Item{}
	const q = `SELECT ` + itemCols + ` FROM items WHERE id = $1`
	if err := r.db.GetContext(ctx, it, q, id); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	var out []model.Item
	const q = `SELECT ` + itemCols + ` FROM items WHERE owner_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &out, q, ownerID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Search(ctx context.Context, text string) ([]model.Item, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	q, args, err := dialect.From("items").Prepared(true).
		Select(goqu.C("id"), goqu.C("name"), goqu.C("description"),
			goqu.C("available"), goqu.C("owner_id"), goqu.C("request_id")).
		Where(
			goqu.C("available").Eq(true),
			goqu.Or(
				goqu.L("lower(name) LIKE ?", pattern),
				goqu.L("lower(description) LIKE ?", pattern),
			),
		).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	var out []model.Item
	const q = `SELECT ` + itemCols + ` FROM items WHERE request_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &out, q, requestID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	q, args, err := dialect.From("items").Prepared(true).
		Select(goqu.C("id"), goqu.C("name"), goqu.C("description"),
			goqu.C("available"), goqu.C("owner_id"), goqu.C("request_id")).
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
