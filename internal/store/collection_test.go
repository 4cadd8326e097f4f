package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planbookai/planbook/internal/kvstore"
)

func testCollection(t *testing.T, cfg Config) *Collection {
	t.Helper()
	c := NewCollection(kvstore.NewMemory(), cfg)
	ids := 0
	c.newID = func() string {
		ids++
		return string(rune('a' + ids - 1))
	}
	c.now = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return c
}

func TestCollection_SeedOnFirstAccess(t *testing.T) {
	kv := kvstore.NewMemory()
	c := NewCollection(kv, Config{
		Name: "things",
		Seed: []map[string]any{{"id": "1", "name": "seeded"}},
	})
	ctx := context.Background()

	got, err := c.GetAll(ctx, Filters{})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "seeded" {
		t.Fatalf("GetAll = %v", got)
	}

	// The seed must be persisted, not recomputed.
	if _, ok, _ := kv.Get(ctx, kvstore.Key("things")); !ok {
		t.Error("expected seed to be written to storage")
	}

	again, err := c.GetAll(ctx, Filters{})
	if err != nil || len(again) != 1 {
		t.Fatalf("second GetAll = %v err=%v", again, err)
	}
}

func TestCollection_CreateAssignsIDAndTimestamps(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})
	ctx := context.Background()

	rec, err := c.Create(ctx, map[string]any{"name": "mới"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec["id"] != "a" {
		t.Errorf("id = %v", rec["id"])
	}
	if rec["created_at"] != "2025-01-02T03:04:05Z" || rec["updated_at"] != "2025-01-02T03:04:05Z" {
		t.Errorf("timestamps = %v / %v", rec["created_at"], rec["updated_at"])
	}

	got, err := c.GetByID(ctx, "a")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got["name"] != "mới" {
		t.Errorf("GetByID name = %v", got["name"])
	}
}

func TestCollection_CreateKeepsCallerID(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})

	rec, err := c.Create(context.Background(), map[string]any{"id": "custom", "created_at": "2020-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec["id"] != "custom" {
		t.Errorf("id = %v; caller id must win", rec["id"])
	}
	if rec["created_at"] != "2020-01-01T00:00:00Z" {
		t.Errorf("created_at = %v; caller timestamp must win", rec["created_at"])
	}
}

func TestCollection_UpdateShallowMerge(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})
	ctx := context.Background()

	if _, err := c.Create(ctx, map[string]any{"id": "1", "name": "cũ", "subject": "Toán học"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	rec, err := c.Update(ctx, "1", map[string]any{"name": "mới", "id": "hacked"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rec["name"] != "mới" {
		t.Errorf("name = %v", rec["name"])
	}
	if rec["subject"] != "Toán học" {
		t.Errorf("untouched field lost: subject = %v", rec["subject"])
	}
	if rec["id"] != "1" {
		t.Errorf("id must be immutable, got %v", rec["id"])
	}
}

func TestCollection_NotFound(t *testing.T) {
	c := testCollection(t, Config{Name: "things", NotFound: "Câu hỏi không tồn tại"})
	ctx := context.Background()

	_, err := c.GetByID(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID error = %v; want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Message != "Câu hỏi không tồn tại" {
		t.Errorf("message = %v", err)
	}

	if _, err := c.Update(ctx, "nope", map[string]any{"x": 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v; want ErrNotFound", err)
	}
	if err := c.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete error = %v; want ErrNotFound", err)
	}
}

func TestCollection_DeleteRemovesOnlyTarget(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		if _, err := c.Create(ctx, map[string]any{"id": id}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := c.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, _ := c.GetAll(ctx, Filters{})
	if len(got) != 2 || got[0]["id"] != "1" || got[1]["id"] != "3" {
		t.Errorf("GetAll after delete = %v", got)
	}
}

func TestCollection_Filters(t *testing.T) {
	c := testCollection(t, Config{
		Name:         "questions",
		SearchFields: []string{"question_text", "subject"},
	})
	ctx := context.Background()
	records := []map[string]any{
		{"id": "1", "subject": "Toán học", "question_text": "Giải phương trình: 2x + 3 = 11"},
		{"id": "2", "subject": "Vật lý", "question_text": "Tính quãng đường"},
		{"id": "3", "subject": "Toán học", "question_text": "Tính đạo hàm"},
	}
	for _, rec := range records {
		if _, err := c.Create(ctx, rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := c.GetAll(ctx, Filters{Fields: map[string]string{"subject": "Toán học"}})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 || got[0]["id"] != "1" || got[1]["id"] != "3" {
		t.Errorf("field filter = %v", got)
	}

	got, err = c.GetAll(ctx, Filters{Search: "PHƯƠNG TRÌNH"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "1" {
		t.Errorf("search filter = %v", got)
	}

	got, _ = c.GetAll(ctx, Filters{
		Fields: map[string]string{"subject": "Toán học"},
		Search: "đạo hàm",
	})
	if len(got) != 1 || got[0]["id"] != "3" {
		t.Errorf("combined filter = %v", got)
	}
}

func TestCollection_MutateStampsUpdatedAt(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})
	ctx := context.Background()
	if _, err := c.Create(ctx, map[string]any{"id": "1", "n": 1.0}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c.now = func() time.Time { return time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC) }

	rec, err := c.Mutate(ctx, "1", func(rec map[string]any) {
		rec["n"] = 2.0
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if rec["n"] != 2.0 {
		t.Errorf("n = %v", rec["n"])
	}
	if rec["updated_at"] != "2025-06-07T08:09:10Z" {
		t.Errorf("updated_at = %v", rec["updated_at"])
	}
}

func TestCollection_InsertAssignsFreshIdentity(t *testing.T) {
	c := testCollection(t, Config{Name: "things"})
	ctx := context.Background()

	src := map[string]any{"id": "1", "title": "gốc", "created_at": "2020-01-01T00:00:00Z"}
	if _, err := c.Create(ctx, src); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inserted, err := c.Insert(ctx, src)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if inserted["id"] == "1" || inserted["id"] == "" {
		t.Errorf("id = %v; want a fresh one", inserted["id"])
	}
	if inserted["created_at"] == "2020-01-01T00:00:00Z" {
		t.Error("created_at must be re-stamped on insert")
	}
	got, _ := c.GetAll(ctx, Filters{})
	if len(got) != 2 {
		t.Errorf("expected two records, got %d", len(got))
	}
}

func TestDecode(t *testing.T) {
	rec := map[string]any{"id": "1", "subject": "Toán học", "points": 1.0}
	var out struct {
		ID      string  `json:"id"`
		Subject string  `json:"subject"`
		Points  float64 `json:"points"`
	}
	if err := Decode(rec, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.ID != "1" || out.Subject != "Toán học" || out.Points != 1.0 {
		t.Errorf("Decode = %+v", out)
	}
}
