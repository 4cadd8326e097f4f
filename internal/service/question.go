package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// QuestionService manages the question bank.
type QuestionService struct {
	api   *api.Client
	local *store.QuestionStore
	log   *zap.Logger
	pol   Policy
}

func (s *QuestionService) GetAll(ctx context.Context, f store.Filters) ([]models.Question, error) {
	return dispatch(ctx, s.log, "questions.getAll", s.pol,
		func(ctx context.Context) ([]models.Question, error) {
			var out []models.Question
			err := s.api.GetJSON(ctx, "/questions", query(f), &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Question, error) {
			return s.local.GetAll(ctx, f)
		},
	)
}

func (s *QuestionService) GetByID(ctx context.Context, id string) (models.Question, error) {
	return dispatch(ctx, s.log, "questions.getById", s.pol,
		func(ctx context.Context) (models.Question, error) {
			var out models.Question
			err := s.api.GetJSON(ctx, "/questions/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Question, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *QuestionService) Create(ctx context.Context, q models.Question) (models.Question, error) {
	return dispatch(ctx, s.log, "questions.create", s.pol,
		func(ctx context.Context) (models.Question, error) {
			var out models.Question
			err := s.api.PostJSON(ctx, "/questions", q, &out)
			return out, err
		},
		func(ctx context.Context) (models.Question, error) {
			return s.local.Create(ctx, q)
		},
	)
}

func (s *QuestionService) Update(ctx context.Context, id string, patch map[string]any) (models.Question, error) {
	return dispatch(ctx, s.log, "questions.update", s.pol,
		func(ctx context.Context) (models.Question, error) {
			var out models.Question
			err := s.api.PutJSON(ctx, "/questions/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Question, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "questions.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/questions/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}

// Approve marks a question as reviewed.
func (s *QuestionService) Approve(ctx context.Context, id string) (models.Question, error) {
	return dispatch(ctx, s.log, "questions.approve", s.pol,
		func(ctx context.Context) (models.Question, error) {
			var out models.Question
			err := s.api.PostJSON(ctx, "/questions/"+id+"/approve", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Question, error) {
			return s.local.Approve(ctx, id)
		},
	)
}

// Stats summarizes the question bank.
func (s *QuestionService) Stats(ctx context.Context) (models.QuestionStats, error) {
	return dispatch(ctx, s.log, "questions.stats", s.pol,
		func(ctx context.Context) (models.QuestionStats, error) {
			var out models.QuestionStats
			err := s.api.GetJSON(ctx, "/questions/stats/summary", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.QuestionStats, error) {
			return s.local.Stats(ctx)
		},
	)
}
