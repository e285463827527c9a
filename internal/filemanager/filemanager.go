// Package filemanager provides process-safe reads and atomic replace-writes of
// small structured documents guarded by a sidecar lock file.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// ErrCorrupt is returned when a document exists but cannot be decoded
var ErrCorrupt = errors.New("document is corrupt")

// UpdateFunc is a function that modifies data in-place
type UpdateFunc[T any] func(data *T) error

// CorruptHandler is called after a corrupt document has been moved aside.
// backup is empty when the move itself failed.
type CorruptHandler func(path, backup string, err error)

type settings struct {
	lockTimeout time.Duration
	retryDelay  time.Duration
	codec       Codec
	onCorrupt   CorruptHandler
}

// Option configures a Manager
type Option func(*settings)

// WithLockTimeout sets the maximum time to wait for a file lock
func WithLockTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.lockTimeout = d
	}
}

// WithCodec forces a codec instead of choosing one from the file extension
func WithCodec(c Codec) Option {
	return func(s *settings) {
		s.codec = c
	}
}

// WithCorruptRecovery makes Update treat an undecodable document as empty.
// The broken file is renamed to "<path>.corrupt-<unixnano>" first so nothing
// is lost, then fn is notified.
func WithCorruptRecovery(fn CorruptHandler) Option {
	return func(s *settings) {
		s.onCorrupt = fn
	}
}

// Manager reads and writes documents of type T
type Manager[T any] struct {
	settings
}

// NewManager creates a new file manager
func NewManager[T any](opts ...Option) *Manager[T] {
	s := settings{
		lockTimeout: 5 * time.Second,
		retryDelay:  50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Manager[T]{settings: s}
}

// LockPath returns the sidecar lock file used for path
func LockPath(path string) string {
	return path + ".lock"
}

func (m *Manager[T]) codecFor(path string) Codec {
	if m.codec != nil {
		return m.codec
	}
	return CodecFor(path)
}

// lock takes the sidecar lock for path. Only writers create the parent
// directory; a reader of a missing document never touches the filesystem.
func (m *Manager[T]) lock(ctx context.Context, path string, shared bool) (*flock.Flock, error) {
	if !shared {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	lock := flock.New(LockPath(path))

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = lock.TryRLockContext(lockCtx, m.retryDelay)
	} else {
		locked, err = lock.TryLockContext(lockCtx, m.retryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}
	return lock, nil
}

// Read reads and decodes the document at path under a shared lock.
// A missing file yields an error satisfying os.IsNotExist without creating
// the lock sidecar; an undecodable one yields an error wrapping ErrCorrupt.
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	lock, err := m.lock(ctx, path, true)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	return m.readLocked(path)
}

func (m *Manager[T]) readLocked(path string) (*T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := m.codecFor(path).Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return &result, nil
}

// Write replaces the document at path atomically under an exclusive lock
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	lock, err := m.lock(ctx, path, false)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return m.writeLocked(path, data)
}

func (m *Manager[T]) writeLocked(path string, data *T) error {
	encoded, err := m.codecFor(path).Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := atomicRename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Update reads the document, applies updateFunc and writes the result back.
// The exclusive lock is held for the whole read-modify-write cycle. A missing
// document starts from the zero value of T.
func (m *Manager[T]) Update(ctx context.Context, path string, updateFunc UpdateFunc[T]) error {
	lock, err := m.lock(ctx, path, false)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	data, err := m.readLocked(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		data = new(T)
	case errors.Is(err, ErrCorrupt) && m.onCorrupt != nil:
		backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().UnixNano())
		if renameErr := os.Rename(path, backup); renameErr != nil {
			backup = ""
		}
		m.onCorrupt(path, backup, err)
		data = new(T)
	default:
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := updateFunc(data); err != nil {
		return fmt.Errorf("update function failed: %w", err)
	}

	return m.writeLocked(path, data)
}
