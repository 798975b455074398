// Package history persists converted prompts in a badger store.
//
// The whole collection lives as one JSON document under a single key and
// every mutation rewrites it in full. Histories are small (hundreds of
// entries), so the simple model wins over per-entry keys.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("history: entry not found")

// historyKey is the one well-known key the collection lives under.
var historyKey = []byte("history")

// Result mirrors the four conversion output fields.
type Result struct {
	Translation string `json:"translation"`
	Prompt      string `json:"prompt"`
	Category    string `json:"category"`
	Rationale   string `json:"rationale"`
}

// Citation is one web source recorded with a grounded conversion.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Entry is one converted prompt.
type Entry struct {
	ID        string     `json:"id"`
	Input     string     `json:"input"`
	Language  string     `json:"language"`
	Grounded  bool       `json:"grounded"`
	Result    Result     `json:"result"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Repository stores prompt history. Construct one with Open and inject it;
// it is safe for concurrent use.
type Repository struct {
	mu    sync.Mutex
	db    *badger.DB
	limit int
}

// Open opens (or creates) the store at path. limit caps stored entries,
// dropping the oldest past it; zero means unlimited.
func Open(path string, limit int) (*Repository, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("history: open store: %w", err)
	}
	return &Repository{db: db, limit: limit}, nil
}

// Close releases the store.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Append stores a new entry and returns it with ID and CreatedAt filled in
// when the caller left them empty.
func (r *Repository) Append(e Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	entries, err := r.load()
	if err != nil {
		return Entry{}, err
	}
	entries = append(entries, e)
	if r.limit > 0 && len(entries) > r.limit {
		entries = entries[len(entries)-r.limit:]
	}
	if err := r.save(entries); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns all entries, newest first.
func (r *Repository) List() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list()
}

func (r *Repository) list() ([]Entry, error) {
	entries, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Get returns the entry with the given id.
func (r *Repository) Get(id string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Search returns entries whose input or result fields contain query,
// case-insensitively, newest first. An empty query returns everything.
func (r *Repository) Search(query string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.list()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries, nil
	}

	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, query) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func matches(e Entry, query string) bool {
	fields := []string{
		e.Input,
		e.Result.Translation,
		e.Result.Prompt,
		e.Result.Category,
		e.Result.Rationale,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Update replaces the stored entry carrying the same id, keeping its
// position in the collection.
func (r *Repository) Update(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			return r.save(entries)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
}

// Delete removes exactly the entry with id, leaving the rest untouched.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.save(kept)
}

// Clear drops every entry.
func (r *Repository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(historyKey)
	})
	if err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

func (r *Repository) load() ([]Entry, error) {
	var entries []Entry
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(historyKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entries)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("history: read: %w", err)
	}
	return entries, nil
}

func (r *Repository) save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey, data)
	})
	if err != nil {
		return fmt.Errorf("history: write: %w", err)
	}
	return nil
}
