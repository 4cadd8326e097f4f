package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// PackageService manages subscription service packages.
type PackageService struct {
	api   *api.Client
	local *store.PackageStore
	log   *zap.Logger
	pol   Policy
}

func (s *PackageService) GetAll(ctx context.Context) ([]models.Package, error) {
	return dispatch(ctx, s.log, "packages.getAll", s.pol,
		func(ctx context.Context) ([]models.Package, error) {
			var out []models.Package
			err := s.api.GetJSON(ctx, "/packages", nil, &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Package, error) {
			return s.local.GetAll(ctx, store.Filters{})
		},
	)
}

func (s *PackageService) GetByID(ctx context.Context, id string) (models.Package, error) {
	return dispatch(ctx, s.log, "packages.getById", s.pol,
		func(ctx context.Context) (models.Package, error) {
			var out models.Package
			err := s.api.GetJSON(ctx, "/packages/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Package, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *PackageService) Create(ctx context.Context, p models.Package) (models.Package, error) {
	return dispatch(ctx, s.log, "packages.create", s.pol,
		func(ctx context.Context) (models.Package, error) {
			var out models.Package
			err := s.api.PostJSON(ctx, "/packages", p, &out)
			return out, err
		},
		func(ctx context.Context) (models.Package, error) {
			return s.local.Create(ctx, p)
		},
	)
}

func (s *PackageService) Update(ctx context.Context, id string, patch map[string]any) (models.Package, error) {
	return dispatch(ctx, s.log, "packages.update", s.pol,
		func(ctx context.Context) (models.Package, error) {
			var out models.Package
			err := s.api.PutJSON(ctx, "/packages/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Package, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *PackageService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "packages.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/packages/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}

// Subscribe subscribes the current account to a package.
func (s *PackageService) Subscribe(ctx context.Context, id string) (models.Package, error) {
	return dispatch(ctx, s.log, "packages.subscribe", s.pol,
		func(ctx context.Context) (models.Package, error) {
			var out models.Package
			err := s.api.PostJSON(ctx, "/packages/"+id+"/subscribe", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Package, error) {
			return s.local.Subscribe(ctx, id)
		},
	)
}
