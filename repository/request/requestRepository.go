package requestrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, req *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	Update(ctx context.Context, req *model.Request) error
	Delete(ctx context.Context, id int64) error
	ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	// Excluding returns all requests posted by other users.
	Excluding(ctx context.Context, requestorID int64) ([]model.Request, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const requestCols = `id, description, requestor_id, created`

func (r *repo) Create(ctx context.Context, req *model.Request) error {
	const q = `
		INSERT INTO requests(description, requestor_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		req.Description, req.RequestorID, req.Created,
	).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	req := &model.Request{}
	const q = `SELECT ` + requestCols + ` FROM requests WHERE id = $1`
	if err := r.db.GetContext(ctx, req, q, id); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) Update(ctx context.Context, req *model.Request) error {
	const q = `
		UPDATE requests
		SET description = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, req.ID, req.Description)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error) {
	var out []model.Request
	const q = `
		SELECT ` + requestCols + `
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created DESC, id DESC`
	if err := r.db.SelectContext(ctx, &out, q, requestorID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Excluding(ctx context.Context, requestorID int64) ([]model.Request, error) {
	var out []model.Request
	const q = `
		SELECT ` + requestCols + `
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created DESC, id DESC`
	if err := r.db.SelectContext(ctx, &out, q, requestorID); err != nil {
		return nil, err
	}
	return out, nil
}
