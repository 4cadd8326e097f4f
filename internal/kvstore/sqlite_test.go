package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()
	key := Key("questions")

	if _, ok, err := kv.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v; want absent", ok, err)
	}

	if err := kv.Set(ctx, key, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after Set = ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Get = %s", got)
	}

	// Overwrite must replace, not duplicate.
	if err := kv.Set(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	got, _, _ = kv.Get(ctx, key)
	if string(got) != `[]` {
		t.Errorf("Get after overwrite = %s", got)
	}

	if err := kv.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, key); ok {
		t.Error("expected key to be gone after Delete")
	}
}

func setupMock(t *testing.T) (*SQLite, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	kv := NewSQLiteWithDB(db)
	cleanup := func() { db.Close() }
	return kv, mock, cleanup
}

func TestSQLite_Get_Hit(t *testing.T) {
	kv, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM planbook_kv WHERE key = ?`)).
		WithArgs("planbookai_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("abc")))

	got, ok, err := kv.Get(context.Background(), "planbookai_token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || string(got) != "abc" {
		t.Errorf("Get = %q ok=%v", got, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLite_Get_Miss(t *testing.T) {
	kv, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM planbook_kv WHERE key = ?`)).
		WithArgs("planbookai_missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := kv.Get(context.Background(), "planbookai_missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestSQLite_Get_Error(t *testing.T) {
	kv, mock, cleanup := setupMock(t)
	defer cleanup()

	wantErr := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM planbook_kv WHERE key = ?`)).
		WithArgs("planbookai_questions").
		WillReturnError(wantErr)

	_, _, err := kv.Get(context.Background(), "planbookai_questions")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Get error = %v; want %v", err, wantErr)
	}
}

func TestSQLite_Set(t *testing.T) {
	kv, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO planbook_kv (key, value) VALUES (?, ?)`)).
		WithArgs("planbookai_exams", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := kv.Set(context.Background(), "planbookai_exams", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLite_Delete(t *testing.T) {
	kv, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM planbook_kv WHERE key = ?`)).
		WithArgs("planbookai_token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := kv.Delete(context.Background(), "planbookai_token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("expected empty store")
	}
	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, _ := kv.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("Get = %q ok=%v", got, ok)
	}

	// Mutating the returned slice must not affect the stored copy.
	got[0] = 'x'
	again, _, _ := kv.Get(ctx, "k")
	if string(again) != "v" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Error("expected key gone after Delete")
	}
}
