package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/apperr"
	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, id int64, name, email *string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("name must not be blank")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperr.Invalid("email must not be blank")
	}

	taken, err := s.r.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("email %s is already in use", email)
	}

	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email %s is already in use", email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, name, email *string) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", id)
		}
		return nil, err
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, apperr.Invalid("name must not be blank")
		}
		u.Name = *name
	}

	if email != nil {
		if strings.TrimSpace(*email) == "" {
			return nil, apperr.Invalid("email must not be blank")
		}
		if !strings.EqualFold(*email, u.Email) {
			taken, err := s.r.ExistsByEmail(ctx, *email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("email %s is already in use", *email)
			}
		}
		u.Email = *email
	}

	if err := s.r.Update(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email %s is already in use", u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.r.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user with id = %d not found", id)
		}
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

// isUniqueViolation is a backstop for the email uniqueness constraint;
// the exists check above races with concurrent creates.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
