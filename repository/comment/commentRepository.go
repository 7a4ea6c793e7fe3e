package commentrepo

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"shareit/model"
)

var dialect = goqu.Dialect("postgres")

// Row is a comment joined with its author's name.
type Row struct {
	ID         int64     `db:"id"`
	Text       string    `db:"text"`
	ItemID     int64     `db:"item_id"`
	AuthorName string    `db:"author_name"`
	Created    time.Time `db:"created"`
}

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]Row, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]Row, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
		INSERT INTO comments(text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		c.Text, c.ItemID, c.AuthorID, c.Created,
	).Scan(&c.ID)
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]Row, error) {
	var out []Row
	const q = `
		SELECT c.id, c.text, c.item_id, u.name AS author_name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created, c.id`
	if err := r.db.SelectContext(ctx, &out, q, itemID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByItems(ctx context.Context, itemIDs []int64) ([]Row, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	q, args, err := dialect.From(goqu.T("comments").As("c")).Prepared(true).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.text").As("text"),
			goqu.I("c.item_id").As("item_id"),
			goqu.I("u.name").As("author_name"),
			goqu.I("c.created").As("created"),
		).
		Where(goqu.I("c.item_id").In(itemIDs)).
		Order(goqu.I("c.created").Asc(), goqu.I("c.id").Asc()).
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
