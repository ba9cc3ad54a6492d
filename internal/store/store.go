// Package store owns the task forest: the id counter, every mutation and
// query, and the document persisted through a storage backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// DefaultMaxTextLength bounds task and subtask text when Options leaves it unset.
const DefaultMaxTextLength = 200

// Recorder receives one entry per applied mutation.
type Recorder interface {
	Record(action string, taskID int, detail string)
}

// Options configures a Store.
type Options struct {
	MaxTextLength    int              // top-level task text limit in characters
	MaxSubtaskLength int              // subtask text limit in characters
	Now              func() time.Time // clock; defaults to time.Now
	Recorder         Recorder         // optional activity sink
}

// Store is the single owner of the task collection.
type Store struct {
	backend  storage.Backend
	opts     Options
	tasks    []*task.Task
	counter  int
	saved    *time.Time
	warnings []error
	unsaved  bool // the last save failed; memory is ahead of the slot
}

// Open loads the store from backend. An empty slot yields an empty store.
// Unreadable data also yields an empty store and is reported through
// Warnings, as is a failed re-save after migration. Only backend read
// failures are returned as errors.
func Open(ctx context.Context, backend storage.Backend, opts Options) (*Store, error) {
	if opts.MaxTextLength == 0 {
		opts.MaxTextLength = DefaultMaxTextLength
	}
	if opts.MaxSubtaskLength == 0 {
		opts.MaxSubtaskLength = opts.MaxTextLength
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{backend: backend, opts: opts}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotExist) {
		return fmt.Errorf("loading tasks: %w", err)
	}

	s.tasks = []*task.Task{}
	s.counter = 1
	s.saved = nil
	s.unsaved = false
	if err != nil {
		return nil
	}

	state, err := Decode(data, s.opts.Now())
	if err != nil {
		s.warnings = append(s.warnings, err)
	}
	s.tasks = state.Tasks
	s.counter = state.Counter
	s.saved = state.LastSaved

	if n := Migrate(s.tasks); n > 0 {
		s.record("migrate", 0, fmt.Sprintf("backfilled status on %d tasks", n))
		if err := s.save(ctx); err != nil {
			s.warnings = append(s.warnings, err)
		}
	}
	return nil
}

// Reload reads the slot again. Changes a failed save left in memory are
// written first; if that still fails the in-memory state is kept and the
// *SaveError returned. The id counter never moves backwards.
func (s *Store) Reload(ctx context.Context) error {
	if s.unsaved {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	floor := s.counter
	if err := s.load(ctx); err != nil {
		return err
	}
	s.counter = max(s.counter, floor)
	return nil
}

// Unsaved reports whether memory holds changes the last save failed to
// persist.
func (s *Store) Unsaved() bool { return s.unsaved }

// Warnings returns and clears the non-fatal problems met while loading.
func (s *Store) Warnings() []error {
	w := s.warnings
	s.warnings = nil
	return w
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Path returns the file backing the store, or "" for in-memory backends.
func (s *Store) Path() string {
	return s.backend.Path()
}

// Limits returns the configured top-level and subtask text limits.
func (s *Store) Limits() (taskText, subtaskText int) {
	return s.opts.MaxTextLength, s.opts.MaxSubtaskLength
}

// Counter returns the next id that will be allocated.
func (s *Store) Counter() int { return s.counter }

// LastSaved returns when the document was last written, if known.
func (s *Store) LastSaved() *time.Time { return s.saved }

func (s *Store) save(ctx context.Context) error {
	now := s.opts.Now()
	data, err := Encode(s.tasks, s.counter, now)
	if err == nil {
		err = s.backend.Save(ctx, data)
	}
	if err != nil {
		s.unsaved = true
		return &SaveError{Err: err}
	}
	s.saved = &now
	s.unsaved = false
	return nil
}

func (s *Store) record(action string, id int, detail string) {
	if s.opts.Recorder != nil {
		s.opts.Recorder.Record(action, id, detail)
	}
}
