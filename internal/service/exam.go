package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/store"
)

// ExamService manages exams and their question lists.
type ExamService struct {
	api   *api.Client
	local *store.ExamStore
	log   *zap.Logger
	pol   Policy
}

func (s *ExamService) GetAll(ctx context.Context, f store.Filters) ([]models.Exam, error) {
	return dispatch(ctx, s.log, "exams.getAll", s.pol,
		func(ctx context.Context) ([]models.Exam, error) {
			var out []models.Exam
			err := s.api.GetJSON(ctx, "/exams", query(f), &out)
			return out, err
		},
		func(ctx context.Context) ([]models.Exam, error) {
			return s.local.GetAll(ctx, f)
		},
	)
}

func (s *ExamService) GetByID(ctx context.Context, id string) (models.Exam, error) {
	return dispatch(ctx, s.log, "exams.getById", s.pol,
		func(ctx context.Context) (models.Exam, error) {
			var out models.Exam
			err := s.api.GetJSON(ctx, "/exams/"+id, nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Exam, error) {
			return s.local.GetByID(ctx, id)
		},
	)
}

func (s *ExamService) Create(ctx context.Context, e models.Exam) (models.Exam, error) {
	return dispatch(ctx, s.log, "exams.create", s.pol,
		func(ctx context.Context) (models.Exam, error) {
			var out models.Exam
			err := s.api.PostJSON(ctx, "/exams", e, &out)
			return out, err
		},
		func(ctx context.Context) (models.Exam, error) {
			return s.local.Create(ctx, e)
		},
	)
}

func (s *ExamService) Update(ctx context.Context, id string, patch map[string]any) (models.Exam, error) {
	return dispatch(ctx, s.log, "exams.update", s.pol,
		func(ctx context.Context) (models.Exam, error) {
			var out models.Exam
			err := s.api.PutJSON(ctx, "/exams/"+id, patch, &out)
			return out, err
		},
		func(ctx context.Context) (models.Exam, error) {
			return s.local.Update(ctx, id, patch)
		},
	)
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	_, err := dispatch(ctx, s.log, "exams.delete", s.pol,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteJSON(ctx, "/exams/"+id, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Delete(ctx, id)
		},
	)
	return err
}

// AddQuestions attaches question ids to an exam.
func (s *ExamService) AddQuestions(ctx context.Context, id string, questionIDs []string) (models.Exam, error) {
	return dispatch(ctx, s.log, "exams.addQuestions", s.pol,
		func(ctx context.Context) (models.Exam, error) {
			body := struct {
				QuestionIDs []string `json:"question_ids"`
			}{QuestionIDs: questionIDs}
			var out models.Exam
			err := s.api.PostJSON(ctx, "/exams/"+id+"/questions", body, &out)
			return out, err
		},
		func(ctx context.Context) (models.Exam, error) {
			return s.local.AddQuestions(ctx, id, questionIDs)
		},
	)
}

// Publish moves an exam into the published state.
func (s *ExamService) Publish(ctx context.Context, id string) (models.Exam, error) {
	return dispatch(ctx, s.log, "exams.publish", s.pol,
		func(ctx context.Context) (models.Exam, error) {
			var out models.Exam
			err := s.api.PostJSON(ctx, "/exams/"+id+"/publish", nil, &out)
			return out, err
		},
		func(ctx context.Context) (models.Exam, error) {
			return s.local.Publish(ctx, id)
		},
	)
}
