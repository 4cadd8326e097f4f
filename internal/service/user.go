package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// UserService manages accounts as records of the administration portal.
type UserService struct {
	api   *api.Client
	local *store.UserStore
	log   *zap.Logger
	pol   Policy
}

func (s *UserService) GetAll(ctx context.Context, f store.Filters) ([]models.User, error) {
	return dispatch(ctx, s.log, "users.getAll", s.pol,
		func(ctx context.Context) ([]models.User, error) {
			var out []models.User
			err := s.api.GetJSON(ctx, "/users", query(f), &out)
			return out, err
		},
		func(ctx context.Context) ([]models.User, error) {
			return s.local.GetAll(ctx, f)
		},
	)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return dispatch(ctx, s.log, "users.getById", s.pol,
		func(ctx context.Context) (models.User, error) {
			var out models.User
			err := s.api.GetJSON(ctx, "/users/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.User, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

// Create takes a raw record so omitted activation flags keep their
// server-side defaults in both paths.
func (s *UserService) Create(ctx context.Context, data map[string]any) (models.User, error) {
	return dispatch(ctx, s.log, "users.create", s.pol,
		func(ctx context.Context) (models.User, error) {
			var out models.User
			err := s.api.PostJSON(ctx, "/users", data, &out)
			return out, err
		},
		func(ctx context.Context) (models.User, error) {
			return s.local.Create(ctx, data)
		},
	)
}

func (s *UserService) Update(ctx context.Context, id string, patch map[string]any) (models.User, error) {
	return dispatch(ctx, s.log, "users.update", s.pol,
		func(ctx context.Context) (models.User, error) {
			var out models.User
			err := s.api.PutJSON(ctx, "/users/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.User, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "users.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/users/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}

// Profile returns the authenticated account's own record. There is no
// local equivalent; the session already caches identity.
func (s *UserService) Profile(ctx context.Context) (models.User, error) {
	var out models.User
	err := s.api.GetJSON(ctx, "/users/profile", nil, &out)
	return out, err
}

// UpdateProfile updates the authenticated account's own record.
func (s *UserService) UpdateProfile(ctx context.Context, patch map[string]any) (models.User, error) {
	var out models.User
	err := s.api.PutJSON(ctx, "/users/profile", patch, &out)
	return out, err
}
