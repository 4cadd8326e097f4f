package service

import (
	"context"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
)

// OCRService drives OCR-based auto-grading. Grading needs the real
// backend, so these calls never fall back to the local store.
type OCRService struct {
	api *api.Client
}

// UploadForGrading uploads scanned answer sheets for an exam.
func (s *OCRService) UploadForGrading(ctx context.Context, examID string, files []api.File) (models.GradingTask, error) {
	var out models.GradingTask
	err := s.api.Upload(ctx, "/ocr/grading/"+examID, files, &out)
	return out, err
}

// GradingStatus reports the state of a grading task.
func (s *OCRService) GradingStatus(ctx context.Context, taskID string) (models.GradingTask, error) {
	var out models.GradingTask
	err := s.api.GetJSON(ctx, "/ocr/status/"+taskID, nil, &out)
	return out, err
}

// GradingResults returns the graded sheets of an exam.
func (s *OCRService) GradingResults(ctx context.Context, examID string) ([]models.GradingResult, error) {
	var out []models.GradingResult
	err := s.api.GetJSON(ctx, "/ocr/results/"+examID, nil, &out)
	return out, err
}
