package userrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
	// ExistsByEmail reports whether another user (id != excludeID)
	// already holds the email, case-insensitively.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users(name, email)
		VALUES ($1, $2)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q, u.Name, u.Email).Scan(&u.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	const q = `
		SELECT id, name, email
		FROM users
		WHERE id = $1`
	if err := r.db.GetContext(ctx, u, q, id); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users
		SET name = $2, email = $3
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	const q = `
		SELECT id, name, email
		FROM users
		ORDER BY id`
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(email) = lower($1) AND id <> $2
		)`
	if err := r.db.GetContext(ctx, &exists, q, email, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}
