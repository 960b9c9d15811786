// Package storage keeps the expense list in memory and mirrors it to a
// line-oriented text file after every change.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go"

	"speselog/internal/core"
	"speselog/internal/log"
)

const newFileMode fs.FileMode = 0o644

var (
	// ErrLoad wraps failures reading an existing persistence file.
	ErrLoad = errors.New("load expenses")
	// ErrSave wraps failures writing the persistence file.
	ErrSave = errors.New("save expenses")
)

// FileStore is an ordered, write-through expense store backed by a text file.
type FileStore struct {
	mu       sync.Mutex
	path     string
	items    []core.Expense
	skipped  []*ParseError
	loadErr  error
	attempts uint
	delay    time.Duration
	logger   *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the store logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRetry sets how many times a save is attempted and the pause between
// attempts. Values below one attempt are ignored.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *FileStore) {
		if attempts > 0 {
			s.attempts = uint(attempts)
		}
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// New returns an empty store for path. Call Load to read existing records.
func New(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		attempts: 1,
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the persistence file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load replaces the in-memory records with the file contents, in file order.
//
// A missing file yields an empty store. Malformed lines are skipped and
// reported by Skipped; they are not written back on the next save. Any
// other read failure leaves the store empty and returns an error wrapping
// ErrLoad. Until a later Load succeeds, Add refuses to write so the
// unread file is never replaced.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items, s.skipped, s.loadErr = nil, nil, nil

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no expenses file yet", log.NewFields().WithOperation(log.OpLoad).WithPath(s.path).ToSlice()...)
		return nil
	}
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %w", ErrLoad, err)
		return s.loadErr
	}
	defer f.Close()

	items, skipped, err := decodeAll(f)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: read %s: %w", ErrLoad, s.path, err)
		return s.loadErr
	}
	s.items, s.skipped = items, skipped

	for _, pe := range skipped {
		s.logger.Warn("skipping malformed expense line",
			log.FieldOperation, log.OpParse,
			log.FieldPath, s.path,
			log.FieldLine, pe.Line,
			log.FieldError, pe.Err.Error())
	}
	s.logger.Debug("expenses loaded",
		log.NewFields().WithOperation(log.OpLoad).WithPath(s.path).WithCount(len(items)).ToSlice()...)
	return nil
}

// Add validates e, appends it and rewrites the file. If the write fails the
// record is removed again, so memory never runs ahead of disk. After a
// failed Load it returns an error wrapping both ErrSave and ErrLoad.
func (s *FileStore) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return fmt.Errorf("%w: refusing to overwrite unread file: %w", ErrSave, s.loadErr)
	}

	n := len(s.items)
	s.items = append(s.items, e)
	if err := s.save(ctx); err != nil {
		s.items[n] = core.Expense{}
		s.items = s.items[:n]
		s.logger.Error("expense not saved, rolled back",
			log.NewFields().WithOperation(log.OpAppend).WithPath(s.path).WithError(err).ToSlice()...)
		return err
	}

	s.logger.Debug("expense appended",
		log.NewFields().
			WithOperation(log.OpAppend).
			WithExpense(e.Amount.String(), e.Category, e.Description).
			WithCount(len(s.items)).
			ToSlice()...)
	return nil
}

// All returns a copy of the records in insertion order.
func (s *FileStore) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...)
}

// Len returns the number of records.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Skipped returns the malformed lines seen by the last Load.
func (s *FileStore) Skipped() []*ParseError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ParseError(nil), s.skipped...)
}

// save must be called with s.mu held.
func (s *FileStore) save(ctx context.Context) error {
	var buf bytes.Buffer
	if err := encodeAll(&buf, s.items); err != nil {
		return fmt.Errorf("%w: encode: %w", ErrSave, err)
	}
	data := buf.Bytes()

	err := retry.Do(
		func() error {
			return writeFileAtomic(s.path, data)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("retrying expenses save",
				log.FieldAttempt, n+1,
				log.FieldPath, s.path,
				log.FieldError, err.Error())
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	s.logger.Debug("expenses saved",
		log.NewFields().WithOperation(log.OpSave).WithPath(s.path).WithCount(len(s.items)).ToSlice()...)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never see a partial file. The existing file's
// permissions are kept; a new file gets newFileMode.
func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	mode := newFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
