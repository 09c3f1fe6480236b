// Package filestore implements the action store as a single JSON file holding
// an array of records, newest first.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// Store keeps actions in a JSON file. Every write replaces the file atomically
// through a temp file and rename. It is safe for concurrent use within one process.
type Store struct {
	path string

	mu   sync.RWMutex // guards the file
	txMu sync.Mutex   // serializes RunInTx callbacks
}

// New opens the store at path, creating the directory and an empty array file when missing.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("create data file: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("stat data file: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Ping checks that the backing file can be read and decoded.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.load()
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns the action with the given id or domain.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			a := r.toDomain()
			return &a, nil
		}
	}
	return nil, fmt.Errorf("action %s: %w", id, domain.ErrNotFound)
}

// List returns actions ordered by createdAt descending, ties by id descending.
// A filter day limits the result to that UTC calendar day.
func (s *Store) List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records, err := s.load()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	var day string
	if filter.Day != nil {
		day = filter.Day.UTC().Format(domain.DateLayout)
	}

	actions := make([]domain.Action, 0, len(records))
	for _, r := range records {
		a := r.toDomain()
		if day != "" && a.Day() != day {
			continue
		}
		actions = append(actions, a)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if !actions[i].CreatedAt.Equal(actions[j].CreatedAt) {
			return actions[i].CreatedAt.After(actions[j].CreatedAt)
		}
		return actions[i].ID > actions[j].ID
	})
	return actions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create prepends a new action. An existing id yields domain.ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, a *domain.Action) (*domain.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == a.ID {
			return nil, fmt.Errorf("action %s: %w", a.ID, domain.ErrAlreadyExists)
		}
	}

	records = append([]record{fromDomain(*a)}, records...)
	if err := s.save(records); err != nil {
		return nil, err
	}

	created := records[0].toDomain()
	return &created, nil
}

// Update applies the set fields of patch. Derived flags are left as stored.
func (s *Store) Update(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		if patch.IsEmpty() {
			a := records[i].toDomain()
			return &a, nil
		}

		records[i] = records[i].apply(patch)
		if err := s.save(records); err != nil {
			return nil, err
		}
		a := records[i].toDomain()
		return &a, nil
	}
	return nil, fmt.Errorf("action %s: %w", id, domain.ErrNotFound)
}

// RunInTx runs fn while holding the store's transaction lock, so concurrent
// read-modify-write sequences do not interleave. Each store call inside fn is
// still atomic on its own; there is no rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// File I/O
// ---------------------------------------------------------------------------

func (s *Store) load() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode data file %s: %w", s.path, err)
	}
	return records, nil
}

func (s *Store) save(records []record) error {
	if records == nil {
		records = []record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode actions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".actions-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Record format
// ---------------------------------------------------------------------------

// record is one element of the JSON array. Flags may be null in older files.
type record struct {
	ID          string  `json:"id"`
	ActionType  string  `json:"actionType"`
	Channel     *string `json:"channel"`
	Surface     string  `json:"surface"`
	Note        string  `json:"note"`
	Timestamp   string  `json:"timestamp,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	Status      string  `json:"status"`
	Outcome     *string `json:"outcome"`
	HasResponse *bool   `json:"hasResponse"`
	IsLead      *bool   `json:"isLead"`
	Revenue     int64   `json:"revenue"`
}

// toDomain converts a record. An unparseable createdAt becomes the zero time,
// which domain.Action.Validate rejects downstream.
func (r record) toDomain() domain.Action {
	created, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)

	a := domain.Action{
		ID:          r.ID,
		ActionType:  domain.ActionType(r.ActionType),
		Surface:     domain.Surface(r.Surface),
		Note:        r.Note,
		CreatedAt:   created.UTC(),
		Status:      domain.Status(r.Status),
		HasResponse: r.HasResponse != nil && *r.HasResponse,
		IsLead:      r.IsLead != nil && *r.IsLead,
		Revenue:     r.Revenue,
	}
	if r.Channel != nil {
		c := domain.Channel(*r.Channel)
		a.Channel = &c
	}
	if r.Outcome != nil {
		o := domain.Outcome(*r.Outcome)
		a.Outcome = &o
	}
	return a
}

func fromDomain(a domain.Action) record {
	ts := a.CreatedAt.UTC().Format(time.RFC3339Nano)
	hasResponse, isLead := a.HasResponse, a.IsLead

	r := record{
		ID:          a.ID,
		ActionType:  string(a.ActionType),
		Surface:     string(a.Surface),
		Note:        a.Note,
		Timestamp:   ts,
		CreatedAt:   ts,
		Status:      string(a.Status),
		HasResponse: &hasResponse,
		IsLead:      &isLead,
		Revenue:     a.Revenue,
	}
	if a.Channel != nil {
		c := string(*a.Channel)
		r.Channel = &c
	}
	if a.Outcome != nil {
		o := string(*a.Outcome)
		r.Outcome = &o
	}
	return r
}

func (r record) apply(p domain.ActionPatch) record {
	if p.Status != nil {
		r.Status = string(*p.Status)
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	if p.Revenue != nil {
		r.Revenue = *p.Revenue
	}
	if p.Outcome != nil {
		o := string(*p.Outcome)
		r.Outcome = &o
	}
	return r
}
