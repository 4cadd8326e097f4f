package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// CurriculumService manages curriculum frameworks.
type CurriculumService struct {
	api   *api.Client
	local *store.CurriculumStore
	log   *zap.Logger
	pol   Policy
}

func (s *CurriculumService) GetAll(ctx context.Context) ([]models.Curriculum, error) {
	return dispatch(ctx, s.log, "curriculum.getAll", s.pol,
		func(ctx context.Context) ([]models.Curriculum, error) {
			var out []models.Curriculum
			err := s.api.GetJSON(ctx, "/curriculum", nil, &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Curriculum, error) {
			return s.local.GetAll(ctx, store.Filters{})
		},
	)
}

func (s *CurriculumService) GetByID(ctx context.Context, id string) (models.Curriculum, error) {
	return dispatch(ctx, s.log, "curriculum.getById", s.pol,
		func(ctx context.Context) (models.Curriculum, error) {
			var out models.Curriculum
			err := s.api.GetJSON(ctx, "/curriculum/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Curriculum, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *CurriculumService) Create(ctx context.Context, c models.Curriculum) (models.Curriculum, error) {
	return dispatch(ctx, s.log, "curriculum.create", s.pol,
		func(ctx context.Context) (models.Curriculum, error) {
			var out models.Curriculum
			err := s.api.PostJSON(ctx, "/curriculum", c, &out)
			return out, err
		},
		func(ctx context.Context) (models.Curriculum, error) {
			return s.local.Create(ctx, c)
		},
	)
}

func (s *CurriculumService) Update(ctx context.Context, id string, patch map[string]any) (models.Curriculum, error) {
	return dispatch(ctx, s.log, "curriculum.update", s.pol,
		func(ctx context.Context) (models.Curriculum, error) {
			var out models.Curriculum
			err := s.api.PutJSON(ctx, "/curriculum/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Curriculum, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *CurriculumService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "curriculum.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/curriculum/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}
