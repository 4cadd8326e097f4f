// Package store implements the local-persistence CRUD fallback: for each
// entity type a collection of JSON records kept under a namespaced key,
// emulating the gateway's CRUD contract when it is unreachable.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/planbookai/planbook/internal/kvstore"
)

// ErrNotFound marks a lookup miss. Collection errors wrap it, so callers
// match with errors.Is.
var ErrNotFound = errors.New("record not found")

// NotFoundError carries the localized message for a missing record.
type NotFoundError struct {
	// Message is the display-ready phrase, e.g. "Câu hỏi không tồn tại".
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Filters narrows a GetAll result. Fields are matched for equality against
// the named record fields; Search is a case-insensitive substring match
// across the collection's configured search fields.
type Filters struct {
	Fields map[string]string
	Search string
}

// Config describes one collection.
type Config struct {
	// Name is the collection key, e.g. "questions".
	Name string
	// NotFound is the localized message for a missing record.
	NotFound string
	// Seed is written on first access when the key is absent.
	Seed []map[string]any
	// SearchFields are the record fields scanned by Filters.Search.
	SearchFields []string
	// Defaults, when set, fills absent fields on create.
	Defaults func(rec map[string]any)
}

// Collection is an ordered sequence of JSON records under one storage key.
// Every mutation is a full read-modify-write of the owning collection,
// serialized by the collection mutex.
type Collection struct {
	kv  kvstore.KV
	cfg Config

	mu    sync.Mutex
	newID func() string
	now   func() time.Time
}

// NewCollection binds a collection to its storage key.
func NewCollection(kv kvstore.KV, cfg Config) *Collection {
	return &Collection{
		kv:    kv,
		cfg:   cfg,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (c *Collection) notFound() error {
	return &NotFoundError{Message: c.cfg.NotFound}
}

func (c *Collection) timestamp() string {
	return c.now().UTC().Format(time.RFC3339)
}

// load reads the collection, seeding it when the key does not exist yet.
// Callers must hold c.mu.
func (c *Collection) load(ctx context.Context) ([]map[string]any, error) {
	raw, ok, err := c.kv.Get(ctx, kvstore.Key(c.cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.cfg.Name, err)
	}
	if !ok {
		seed := cloneRecords(c.cfg.Seed)
		if err := c.save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.cfg.Name, err)
	}
	return records, nil
}

// save rewrites the whole collection. Callers must hold c.mu.
func (c *Collection) save(ctx context.Context, records []map[string]any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.cfg.Name, err)
	}
	if err := c.kv.Set(ctx, kvstore.Key(c.cfg.Name), raw); err != nil {
		return fmt.Errorf("save %s: %w", c.cfg.Name, err)
	}
	return nil
}

// GetAll returns the records matching f, in insertion order.
func (c *Collection) GetAll(ctx context.Context, f Filters) ([]map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(records))
	search := strings.ToLower(f.Search)
	for _, rec := range records {
		if !matchFields(rec, f.Fields) {
			continue
		}
		if search != "" && !matchSearch(rec, c.cfg.SearchFields, search) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetByID returns the record with the given id.
func (c *Collection) GetByID(ctx context.Context, id string) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if recordID(rec) == id {
			return rec, nil
		}
	}
	return nil, c.notFound()
}

// Create appends a new record, assigning an id when the caller did not
// provide one and stamping creation/update timestamps.
func (c *Collection) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	rec := cloneRecord(data)
	if recordID(rec) == "" {
		rec["id"] = c.newID()
	}
	now := c.timestamp()
	if _, ok := rec["created_at"]; !ok {
		rec["created_at"] = now
	}
	rec["updated_at"] = now
	if c.cfg.Defaults != nil {
		c.cfg.Defaults(rec)
	}

	records = append(records, rec)
	if err := c.save(ctx, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges patch over the existing record: provided fields overwrite,
// omitted fields persist, the id is immutable.
func (c *Collection) Update(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, c.notFound()
	}

	rec := records[idx]
	for k, v := range patch {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = c.timestamp()
	records[idx] = rec

	if err := c.save(ctx, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record with the given id.
func (c *Collection) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return c.notFound()
	}
	records = append(records[:idx], records[idx+1:]...)
	return c.save(ctx, records)
}

// Mutate applies fn to the record with the given id under the collection
// lock and persists the result. Entity stores build their narrow
// extensions (publish, approve, add-questions) on it.
func (c *Collection) Mutate(ctx context.Context, id string, fn func(rec map[string]any)) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, c.notFound()
	}

	rec := records[idx]
	fn(rec)
	rec["updated_at"] = c.timestamp()
	records[idx] = rec

	if err := c.save(ctx, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Insert appends an already-shaped record (used by duplicate) with fresh
// id and timestamps.
func (c *Collection) Insert(ctx context.Context, rec map[string]any) (map[string]any, error) {
	clone := cloneRecord(rec)
	clone["id"] = ""
	delete(clone, "created_at")
	return c.Create(ctx, clone)
}

func recordID(rec map[string]any) string {
	if s, ok := rec["id"].(string); ok {
		return s
	}
	return ""
}

func indexOf(records []map[string]any, id string) int {
	for i, rec := range records {
		if recordID(rec) == id {
			return i
		}
	}
	return -1
}

func matchFields(rec map[string]any, fields map[string]string) bool {
	for k, want := range fields {
		if stringify(rec[k]) != want {
			return false
		}
	}
	return true
}

func matchSearch(rec map[string]any, fields []string, search string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(stringify(rec[f])), search) {
			return true
		}
	}
	return false
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func cloneRecord(rec map[string]any) map[string]any {
	raw, err := json.Marshal(rec)
	if err != nil {
		// Records originate from JSON; marshalling them back cannot fail.
		panic(fmt.Sprintf("clone record: %v", err))
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("clone record: %v", err))
	}
	return out
}

func cloneRecords(records []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, cloneRecord(rec))
	}
	return out
}

// Decode converts generic records into a typed slice or struct via JSON.
func Decode(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
