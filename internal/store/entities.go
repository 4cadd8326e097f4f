package store

import (
	"context"

	"github.com/planbookai/planbook/internal/models"
)

// QuestionStore is the local question bank.
type QuestionStore struct{ col *Collection }

func (s *QuestionStore) GetAll(ctx context.Context, f Filters) ([]models.Question, error) {
	return getAll[models.Question](ctx, s.col, f)
}

func (s *QuestionStore) GetByID(ctx context.Context, id string) (models.Question, error) {
	return getByID[models.Question](ctx, s.col, id)
}

func (s *QuestionStore) Create(ctx context.Context, q models.Question) (models.Question, error) {
	return create(ctx, s.col, q)
}

func (s *QuestionStore) Update(ctx context.Context, id string, patch map[string]any) (models.Question, error) {
	return update[models.Question](ctx, s.col, id, patch)
}

func (s *QuestionStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// Approve marks a question as reviewed and approved.
func (s *QuestionStore) Approve(ctx context.Context, id string) (models.Question, error) {
	return mutate[models.Question](ctx, s.col, id, func(rec map[string]any) {
		rec["is_approved"] = true
	})
}

// Stats summarizes the bank by subject and difficulty.
func (s *QuestionStore) Stats(ctx context.Context) (models.QuestionStats, error) {
	questions, err := s.GetAll(ctx, Filters{})
	if err != nil {
		return models.QuestionStats{}, err
	}
	stats := models.QuestionStats{
		Total:        len(questions),
		BySubject:    map[string]int{},
		ByDifficulty: map[string]int{},
	}
	for _, q := range questions {
		stats.BySubject[q.Subject]++
		stats.ByDifficulty[q.Difficulty]++
	}
	return stats, nil
}

// ExamStore is the local exam collection.
type ExamStore struct{ col *Collection }

func (s *ExamStore) GetAll(ctx context.Context, f Filters) ([]models.Exam, error) {
	return getAll[models.Exam](ctx, s.col, f)
}

func (s *ExamStore) GetByID(ctx context.Context, id string) (models.Exam, error) {
	return getByID[models.Exam](ctx, s.col, id)
}

func (s *ExamStore) Create(ctx context.Context, e models.Exam) (models.Exam, error) {
	return create(ctx, s.col, e)
}

func (s *ExamStore) Update(ctx context.Context, id string, patch map[string]any) (models.Exam, error) {
	return update[models.Exam](ctx, s.col, id, patch)
}

func (s *ExamStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// AddQuestions attaches question ids to an exam, keeping the existing
// order and never storing the same id twice.
func (s *ExamStore) AddQuestions(ctx context.Context, id string, questionIDs []string) (models.Exam, error) {
	return mutate[models.Exam](ctx, s.col, id, func(rec map[string]any) {
		existing, _ := rec["questions"].([]any)
		seen := make(map[string]bool, len(existing))
		merged := make([]any, 0, len(existing)+len(questionIDs))
		for _, v := range existing {
			qid := stringify(v)
			if qid == "" || seen[qid] {
				continue
			}
			seen[qid] = true
			merged = append(merged, qid)
		}
		for _, qid := range questionIDs {
			if qid == "" || seen[qid] {
				continue
			}
			seen[qid] = true
			merged = append(merged, qid)
		}
		rec["questions"] = merged
		rec["total_questions"] = len(merged)
	})
}

// Publish moves an exam into the published state.
func (s *ExamStore) Publish(ctx context.Context, id string) (models.Exam, error) {
	return mutate[models.Exam](ctx, s.col, id, func(rec map[string]any) {
		rec["status"] = "published"
	})
}

// LessonStore is the local lesson-plan collection.
type LessonStore struct{ col *Collection }

func (s *LessonStore) GetAll(ctx context.Context, f Filters) ([]models.Lesson, error) {
	return getAll[models.Lesson](ctx, s.col, f)
}

func (s *LessonStore) GetByID(ctx context.Context, id string) (models.Lesson, error) {
	return getByID[models.Lesson](ctx, s.col, id)
}

func (s *LessonStore) Create(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	return create(ctx, s.col, l)
}

func (s *LessonStore) Update(ctx context.Context, id string, patch map[string]any) (models.Lesson, error) {
	return update[models.Lesson](ctx, s.col, id, patch)
}

func (s *LessonStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// Duplicate copies a lesson plan under a new id, marking the title.
func (s *LessonStore) Duplicate(ctx context.Context, id string) (models.Lesson, error) {
	rec, err := s.col.GetByID(ctx, id)
	if err != nil {
		return models.Lesson{}, err
	}
	clone := cloneRecord(rec)
	clone["title"] = stringify(clone["title"]) + " (Bản sao)"
	inserted, err := s.col.Insert(ctx, clone)
	if err != nil {
		return models.Lesson{}, err
	}
	var out models.Lesson
	return out, Decode(inserted, &out)
}

// Generate returns the canned lesson draft used when the AI endpoint is
// unreachable.
func (s *LessonStore) Generate(_ context.Context, _ string) (models.Lesson, error) {
	return models.Lesson{
		Title:      "Giáo án được tạo bởi AI",
		Content:    "<p>Nội dung giáo án được tạo tự động dựa trên prompt của bạn.</p>",
		Objectives: []string{"Mục tiêu 1", "Mục tiêu 2"},
	}, nil
}

// Stats summarizes stored lesson plans by subject.
func (s *LessonStore) Stats(ctx context.Context) (models.LessonStats, error) {
	lessons, err := s.GetAll(ctx, Filters{})
	if err != nil {
		return models.LessonStats{}, err
	}
	stats := models.LessonStats{Total: len(lessons), BySubject: map[string]int{}}
	for _, l := range lessons {
		stats.BySubject[l.Subject]++
	}
	return stats, nil
}

// TemplateStore is the local template collection.
type TemplateStore struct{ col *Collection }

func (s *TemplateStore) GetAll(ctx context.Context, f Filters) ([]models.Template, error) {
	return getAll[models.Template](ctx, s.col, f)
}

func (s *TemplateStore) GetByID(ctx context.Context, id string) (models.Template, error) {
	return getByID[models.Template](ctx, s.col, id)
}

func (s *TemplateStore) Create(ctx context.Context, t models.Template) (models.Template, error) {
	return create(ctx, s.col, t)
}

func (s *TemplateStore) Update(ctx context.Context, id string, patch map[string]any) (models.Template, error) {
	return update[models.Template](ctx, s.col, id, patch)
}

func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// PackageStore is the local service-package collection.
type PackageStore struct{ col *Collection }

func (s *PackageStore) GetAll(ctx context.Context, f Filters) ([]models.Package, error) {
	return getAll[models.Package](ctx, s.col, f)
}

func (s *PackageStore) GetByID(ctx context.Context, id string) (models.Package, error) {
	return getByID[models.Package](ctx, s.col, id)
}

func (s *PackageStore) Create(ctx context.Context, p models.Package) (models.Package, error) {
	return create(ctx, s.col, p)
}

func (s *PackageStore) Update(ctx context.Context, id string, patch map[string]any) (models.Package, error) {
	return update[models.Package](ctx, s.col, id, patch)
}

func (s *PackageStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// Subscribe counts one subscription against a package.
func (s *PackageStore) Subscribe(ctx context.Context, id string) (models.Package, error) {
	return mutate[models.Package](ctx, s.col, id, func(rec map[string]any) {
		n := 0
		switch v := rec["subscriptions"].(type) {
		case float64:
			n = int(v)
		case int:
			n = v
		}
		rec["subscriptions"] = n + 1
	})
}

// CurriculumStore is the local curriculum-framework collection.
type CurriculumStore struct{ col *Collection }

func (s *CurriculumStore) GetAll(ctx context.Context, f Filters) ([]models.Curriculum, error) {
	return getAll[models.Curriculum](ctx, s.col, f)
}

func (s *CurriculumStore) GetByID(ctx context.Context, id string) (models.Curriculum, error) {
	return getByID[models.Curriculum](ctx, s.col, id)
}

func (s *CurriculumStore) Create(ctx context.Context, c models.Curriculum) (models.Curriculum, error) {
	return create(ctx, s.col, c)
}

func (s *CurriculumStore) Update(ctx context.Context, id string, patch map[string]any) (models.Curriculum, error) {
	return update[models.Curriculum](ctx, s.col, id, patch)
}

func (s *CurriculumStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// UserStore is the local managed-user collection.
type UserStore struct{ col *Collection }

func (s *UserStore) GetAll(ctx context.Context, f Filters) ([]models.User, error) {
	// "all" means no role filter, matching the management UI contract.
	if f.Fields != nil && f.Fields["role"] == "all" {
		delete(f.Fields, "role")
	}
	return getAll[models.User](ctx, s.col, f)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	return getByID[models.User](ctx, s.col, id)
}

// Create takes a raw record so that activation flags omitted by the
// caller pick up the collection defaults instead of Go zero values.
func (s *UserStore) Create(ctx context.Context, data map[string]any) (models.User, error) {
	rec, err := s.col.Create(ctx, data)
	if err != nil {
		return models.User{}, err
	}
	var out models.User
	return out, Decode(rec, &out)
}

func (s *UserStore) Update(ctx context.Context, id string, patch map[string]any) (models.User, error) {
	return update[models.User](ctx, s.col, id, patch)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}
