package requestsvc

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
	Create(ctx context.Context, req *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	Update(ctx context.Context, req *model.Request) error
	Delete(ctx context.Context, id int64) error
	ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	Excluding(ctx context.Context, requestorID int64) ([]model.Request, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

// ItemRef is the short item projection attached to fulfilled requests.
type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

type View struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
	Items       []ItemRef `json:"items"`
}

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*View, error)
	Update(ctx context.Context, requestorID, requestID int64, description string) (*View, error)
	Delete(ctx context.Context, requestID int64) error
	ByID(ctx context.Context, requestID int64) (*View, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]View, error)
	// Others lists the postings of every other user.
	Others(ctx context.Context, requestorID int64) ([]View, error)
}

type service struct {
	requests Repo
	users    UserRepo
	items    ItemRepo
}

func New(requests Repo, users UserRepo, items ItemRepo) Service {
	return &service{requests: requests, users: users, items: items}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*View, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("description must not be blank")
	}

	if _, err := s.users.ByID(ctx, requestorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", requestorID)
		}
		return nil, err
	}

	req := &model.Request{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return newView(*req), nil
}

func (s *service) Update(ctx context.Context, requestorID, requestID int64, description string) (*View, error) {
	if requestID == 0 {
		return nil, apperr.Invalid("id required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("description must not be blank")
	}

	if _, err := s.users.ByID(ctx, requestorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", requestorID)
		}
		return nil, err
	}

	req, err := s.byID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequestorID != requestorID {
		return nil, apperr.Forbidden("user %d is not the author of request %d", requestorID, requestID)
	}

	req.Description = description
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return newView(*req), nil
}

func (s *service) Delete(ctx context.Context, requestID int64) error {
	if _, err := s.byID(ctx, requestID); err != nil {
		return err
	}
	return s.requests.Delete(ctx, requestID)
}

func (s *service) ByID(ctx context.Context, requestID int64) (*View, error) {
	req, err := s.byID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	view := newView(*req)
	for _, it := range items {
		view.Items = append(view.Items, ItemRef{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	return view, nil
}

func (s *service) ByRequestor(ctx context.Context, requestorID int64) ([]View, error) {
	if _, err := s.users.ByID(ctx, requestorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id = %d not found", requestorID)
		}
		return nil, err
	}

	requests, err := s.requests.ByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	items, err := s.items.ByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]ItemRef)
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID],
			ItemRef{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}

	out := make([]View, 0, len(requests))
	for _, req := range requests {
		view := newView(req)
		if refs := byRequest[req.ID]; refs != nil {
			view.Items = refs
		}
		out = append(out, *view)
	}
	return out, nil
}

func (s *service) Others(ctx context.Context, requestorID int64) ([]View, error) {
	requests, err := s.requests.Excluding(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(requests))
	for _, req := range requests {
		out = append(out, *newView(req))
	}
	return out, nil
}

func newView(req model.Request) *View {
	return &View{
		ID:          req.ID,
		Description: req.Description,
		RequestorID: req.RequestorID,
		Created:     req.Created,
		Items:       make([]ItemRef, 0),
	}
}

func (s *service) byID(ctx context.Context, requestID int64) (*model.Request, error) {
	req, err := s.requests.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("request with id = %d not found", requestID)
		}
		return nil, err
	}
	return req, nil
}
