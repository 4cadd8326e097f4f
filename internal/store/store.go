package store

import (
	"context"

	"github.com/planbookai/planbook/internal/kvstore"
)

// Store bundles the per-entity collections of the local fallback layer.
type Store struct {
	Questions  *QuestionStore
	Exams      *ExamStore
	Lessons    *LessonStore
	Templates  *TemplateStore
	Packages   *PackageStore
	Curriculum *CurriculumStore
	Users      *UserStore
}

// New wires every collection onto the given storage backend. Collections
// are lazily seeded with demo data on first access.
func New(kv kvstore.KV) *Store {
	return &Store{
		Questions: &QuestionStore{col: NewCollection(kv, Config{
			Name:         "questions",
			NotFound:     "Câu hỏi không tồn tại",
			Seed:         seedQuestions(),
			SearchFields: []string{"question_text", "subject", "topic"},
		})},
		Exams: &ExamStore{col: NewCollection(kv, Config{
			Name:         "exams",
			NotFound:     "Đề thi không tồn tại",
			Seed:         seedExams(),
			SearchFields: []string{"title", "subject"},
			Defaults: func(rec map[string]any) {
				if v, ok := rec["questions"]; !ok || v == nil {
					rec["questions"] = []any{}
				}
			},
		})},
		Lessons: &LessonStore{col: NewCollection(kv, Config{
			Name:         "lessons",
			NotFound:     "Giáo án không tồn tại",
			Seed:         seedLessons(),
			SearchFields: []string{"title", "subject"},
		})},
		Templates: &TemplateStore{col: NewCollection(kv, Config{
			Name:     "templates",
			NotFound: "Template không tồn tại",
			Seed:     seedTemplates(),
		})},
		Packages: &PackageStore{col: NewCollection(kv, Config{
			Name:     "packages",
			NotFound: "Gói dịch vụ không tồn tại",
			Seed:     seedPackages(),
			Defaults: func(rec map[string]any) {
				// New packages always start with zero subscriptions.
				rec["subscriptions"] = 0
			},
		})},
		Curriculum: &CurriculumStore{col: NewCollection(kv, Config{
			Name:         "curriculum",
			NotFound:     "Khung chương trình không tồn tại",
			Seed:         seedCurriculum(),
			SearchFields: []string{"name", "subject"},
		})},
		Users: &UserStore{col: NewCollection(kv, Config{
			Name:         "users",
			NotFound:     "Người dùng không tồn tại",
			Seed:         seedUsers(),
			SearchFields: []string{"username", "email", "full_name"},
			Defaults: func(rec map[string]any) {
				if _, ok := rec["is_active"]; !ok {
					rec["is_active"] = true
				}
				if _, ok := rec["is_verified"]; !ok {
					rec["is_verified"] = false
				}
			},
		})},
	}
}

// getAll loads and decodes a filtered collection into typed records.
func getAll[T any](ctx context.Context, col *Collection, f Filters) ([]T, error) {
	recs, err := col.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	if err := Decode(recs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func getByID[T any](ctx context.Context, col *Collection, id string) (T, error) {
	var out T
	rec, err := col.GetByID(ctx, id)
	if err != nil {
		return out, err
	}
	return out, Decode(rec, &out)
}

func create[T any](ctx context.Context, col *Collection, in T) (T, error) {
	var out T
	var data map[string]any
	if err := Decode(in, &data); err != nil {
		return out, err
	}
	rec, err := col.Create(ctx, data)
	if err != nil {
		return out, err
	}
	return out, Decode(rec, &out)
}

func update[T any](ctx context.Context, col *Collection, id string, patch map[string]any) (T, error) {
	var out T
	rec, err := col.Update(ctx, id, patch)
	if err != nil {
		return out, err
	}
	return out, Decode(rec, &out)
}

func mutate[T any](ctx context.Context, col *Collection, id string, fn func(rec map[string]any)) (T, error) {
	var out T
	rec, err := col.Mutate(ctx, id, fn)
	if err != nil {
		return out, err
	}
	return out, Decode(rec, &out)
}
