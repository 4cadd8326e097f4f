package store

import (
	"context"
	"testing"

	"github.com/planbookai/planbook/internal/kvstore"
	"github.com/planbookai/planbook/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(kvstore.NewMemory())
}

func TestQuestionStore_Approve(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	q, err := st.Questions.Approve(ctx, "1")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if !q.IsApproved {
		t.Error("expected is_approved to be set")
	}

	got, err := st.Questions.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsApproved {
		t.Error("approval did not persist")
	}
}

func TestQuestionStore_Stats(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	stats, err := st.Questions.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d; want 3", stats.Total)
	}
	if stats.BySubject["Toán học"] != 1 || stats.BySubject["Vật lý"] != 1 || stats.BySubject["Hóa học"] != 1 {
		t.Errorf("by subject = %v", stats.BySubject)
	}
	if stats.ByDifficulty["medium"] != 1 || stats.ByDifficulty["hard"] != 1 || stats.ByDifficulty["easy"] != 1 {
		t.Errorf("by difficulty = %v", stats.ByDifficulty)
	}
}

func TestExamStore_AddQuestionsDeduplicates(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Seed exam 1 already holds question "1".
	exam, err := st.Exams.AddQuestions(ctx, "1", []string{"2", "1", "3", "2"})
	if err != nil {
		t.Fatalf("AddQuestions failed: %v", err)
	}
	want := []string{"1", "2", "3"}
	if len(exam.Questions) != len(want) {
		t.Fatalf("questions = %v; want %v", exam.Questions, want)
	}
	for i, qid := range want {
		if exam.Questions[i] != qid {
			t.Errorf("questions[%d] = %q; want %q", i, exam.Questions[i], qid)
		}
	}
	if exam.TotalQuestions != 3 {
		t.Errorf("total_questions = %d; want 3", exam.TotalQuestions)
	}

	// Re-adding an already attached id must be a no-op.
	exam, err = st.Exams.AddQuestions(ctx, "1", []string{"3"})
	if err != nil {
		t.Fatalf("AddQuestions failed: %v", err)
	}
	if len(exam.Questions) != 3 || exam.TotalQuestions != 3 {
		t.Errorf("after re-add: questions = %v total = %d", exam.Questions, exam.TotalQuestions)
	}
}

func TestExamStore_Publish(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Seed exam 2 starts as draft.
	exam, err := st.Exams.Publish(ctx, "2")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if exam.Status != "published" {
		t.Errorf("status = %q; want published", exam.Status)
	}
}

func TestExamStore_CreateDefaultsQuestions(t *testing.T) {
	st := testStore(t)

	exam, err := st.Exams.Create(context.Background(), models.Exam{Title: "Đề mới", Subject: "Toán học"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if exam.Questions == nil {
		t.Error("expected questions to default to an empty list")
	}
	if len(exam.Questions) != 0 {
		t.Errorf("questions = %v; want empty", exam.Questions)
	}
}

func TestLessonStore_Duplicate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	dup, err := st.Lessons.Duplicate(ctx, "1")
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dup.Title != "Bài 1: Phương trình bậc nhất một ẩn (Bản sao)" {
		t.Errorf("title = %q", dup.Title)
	}
	if dup.ID == "" || dup.ID == "1" {
		t.Errorf("id = %q; want a fresh one", dup.ID)
	}
	if dup.Subject != "Toán học" {
		t.Errorf("subject = %q; content must carry over", dup.Subject)
	}

	lessons, err := st.Lessons.GetAll(ctx, Filters{})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(lessons) != 3 {
		t.Errorf("lesson count = %d; want 3", len(lessons))
	}
}

func TestLessonStore_Generate(t *testing.T) {
	st := testStore(t)

	l, err := st.Lessons.Generate(context.Background(), "giáo án về đạo hàm")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if l.Title != "Giáo án được tạo bởi AI" {
		t.Errorf("title = %q", l.Title)
	}
	if len(l.Objectives) != 2 {
		t.Errorf("objectives = %v", l.Objectives)
	}
}

func TestLessonStore_Stats(t *testing.T) {
	st := testStore(t)

	stats, err := st.Lessons.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d; want 2", stats.Total)
	}
	if stats.BySubject["Toán học"] != 1 || stats.BySubject["Vật lý"] != 1 {
		t.Errorf("by subject = %v", stats.BySubject)
	}
}

func TestPackageStore_Subscribe(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Gói Basic seeds with 45 subscriptions.
	pkg, err := st.Packages.Subscribe(ctx, "1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if pkg.Subscriptions != 46 {
		t.Errorf("subscriptions = %d; want 46", pkg.Subscriptions)
	}

	pkg, err = st.Packages.Subscribe(ctx, "1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if pkg.Subscriptions != 47 {
		t.Errorf("subscriptions = %d; want 47", pkg.Subscriptions)
	}
}

func TestPackageStore_CreateForcesZeroSubscriptions(t *testing.T) {
	st := testStore(t)

	pkg, err := st.Packages.Create(context.Background(), models.Package{
		Name:          "Gói Enterprise",
		Price:         500000,
		Subscriptions: 99,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if pkg.Subscriptions != 0 {
		t.Errorf("subscriptions = %d; new packages must start at zero", pkg.Subscriptions)
	}
}

func TestUserStore_CreateDefaults(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	u, err := st.Users.Create(ctx, map[string]any{
		"username":  "teacher2",
		"email":     "teacher2@example.com",
		"full_name": "Trần Thị B",
		"role":      "teacher",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !u.IsActive {
		t.Error("is_active must default to true")
	}
	if u.IsVerified {
		t.Error("is_verified must default to false")
	}

	// Explicit flags win over the defaults.
	u, err = st.Users.Create(ctx, map[string]any{
		"username":  "locked",
		"is_active": false,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.IsActive {
		t.Error("explicit is_active=false must be kept")
	}
}

func TestUserStore_RoleAllMeansNoFilter(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	all, err := st.Users.GetAll(ctx, Filters{Fields: map[string]string{"role": "all"}})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("role=all returned %d users; want 2", len(all))
	}

	teachers, err := st.Users.GetAll(ctx, Filters{Fields: map[string]string{"role": "teacher"}})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(teachers) != 1 || teachers[0].Username != "teacher1" {
		t.Errorf("role=teacher = %v", teachers)
	}
}

func TestUserStore_Search(t *testing.T) {
	st := testStore(t)

	got, err := st.Users.GetAll(context.Background(), Filters{Search: "nguyễn"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 1 || got[0].Username != "teacher1" {
		t.Errorf("search = %v", got)
	}
}
