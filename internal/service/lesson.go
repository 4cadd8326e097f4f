package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// LessonService manages lesson plans.
type LessonService struct {
	api   *api.Client
	local *store.LessonStore
	log   *zap.Logger
	pol   Policy
}

func (s *LessonService) GetAll(ctx context.Context, f store.Filters) ([]models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.getAll", s.pol,
		func(ctx context.Context) ([]models.Lesson, error) {
			var out []models.Lesson
			err := s.api.GetJSON(ctx, "/lessons", query(f), &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Lesson, error) {
			return s.local.GetAll(ctx, f)
		},
	)
}

func (s *LessonService) GetByID(ctx context.Context, id string) (models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.getById", s.pol,
		func(ctx context.Context) (models.Lesson, error) {
			var out models.Lesson
			err := s.api.GetJSON(ctx, "/lessons/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Lesson, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *LessonService) Create(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.create", s.pol,
		func(ctx context.Context) (models.Lesson, error) {
			var out models.Lesson
			err := s.api.PostJSON(ctx, "/lessons", l, &out)
			return out, err
		},
		func(ctx context.Context) (models.Lesson, error) {
			return s.local.Create(ctx, l)
		},
	)
}

func (s *LessonService) Update(ctx context.Context, id string, patch map[string]any) (models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.update", s.pol,
		func(ctx context.Context) (models.Lesson, error) {
			var out models.Lesson
			err := s.api.PutJSON(ctx, "/lessons/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Lesson, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *LessonService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "lessons.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/lessons/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}

// Duplicate copies a lesson plan under a new id.
func (s *LessonService) Duplicate(ctx context.Context, id string) (models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.duplicate", s.pol,
		func(ctx context.Context) (models.Lesson, error) {
			var out models.Lesson
			err := s.api.PostJSON(ctx, "/lessons/"+id+"/duplicate", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Lesson, error) {
			return s.local.Duplicate(ctx, id)
		},
	)
}

// Generate asks the gateway for an AI-drafted lesson plan; the local
// fallback serves a canned draft.
func (s *LessonService) Generate(ctx context.Context, prompt string) (models.Lesson, error) {
	return dispatch(ctx, s.log, "lessons.generate", s.pol,
		func(ctx context.Context) (models.Lesson, error) {
			body := struct {
				Prompt string `json:"prompt"`
			}{Prompt: prompt}
			var out models.Lesson
			err := s.api.PostJSON(ctx, "/lessons/generate", body, &out)
			return out, err
		},
		func(ctx context.Context) (models.Lesson, error) {
			return s.local.Generate(ctx, prompt)
		},
	)
}

// Stats summarizes stored lesson plans.
func (s *LessonService) Stats(ctx context.Context) (models.LessonStats, error) {
	return dispatch(ctx, s.log, "lessons.stats", s.pol,
		func(ctx context.Context) (models.LessonStats, error) {
			var out models.LessonStats
			err := s.api.GetJSON(ctx, "/lessons/stats/summary", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.LessonStats, error) {
			return s.local.Stats(ctx)
		},
	)
}
