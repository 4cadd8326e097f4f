package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// TemplateService manages lesson-plan templates.
type TemplateService struct {
	api   *api.Client
	local *store.TemplateStore
	log   *zap.Logger
	pol   Policy
}

func (s *TemplateService) GetAll(ctx context.Context) ([]models.Template, error) {
	return dispatch(ctx, s.log, "templates.getAll", s.pol,
		func(ctx context.Context) ([]models.Template, error) {
			var out []models.Template
			err := s.api.GetJSON(ctx, "/templates", nil, &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Template, error) {
			return s.local.GetAll(ctx, store.Filters{})
		},
	)
}

func (s *TemplateService) GetByID(ctx context.Context, id string) (models.Template, error) {
	return dispatch(ctx, s.log, "templates.getById", s.pol,
		func(ctx context.Context) (models.Template, error) {
			var out models.Template
			err := s.api.GetJSON(ctx, "/templates/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Template, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *TemplateService) Create(ctx context.Context, t models.Template) (models.Template, error) {
	return dispatch(ctx, s.log, "templates.create", s.pol,
		func(ctx context.Context) (models.Template, error) {
			var out models.Template
			err := s.api.PostJSON(ctx, "/templates", t, &out)
			return out, err
		},
		func(ctx context.Context) (models.Template, error) {
			return s.local.Create(ctx, t)
		},
	)
}

func (s *TemplateService) Update(ctx context.Context, id string, patch map[string]any) (models.Template, error) {
	return dispatch(ctx, s.log, "templates.update", s.pol,
		func(ctx context.Context) (models.Template, error) {
			var out models.Template
			err := s.api.PutJSON(ctx, "/templates/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Template, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "templates.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/templates/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}
