package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aki/qrlabel/internal/core/logger"
	"github.com/aki/qrlabel/internal/filemanager"
)

// File keeps all records in one JSON or YAML document. A ".json" path is
// compatible with the legacy last_numbers.json layout.
type File struct {
	path string
	fm   *filemanager.Manager[Document]
	log  logger.Logger
}

// NewFile creates a file-backed store. The document is created on the first
// SetLast; a missing document reads as empty.
func NewFile(path string, log logger.Logger) *File {
	log = logger.OrNop(log).With("store", "file", "path", path)
	return &File{
		path: path,
		log:  log,
		fm: filemanager.NewManager[Document](
			filemanager.WithCorruptRecovery(func(path, backup string, err error) {
				log.Warn("sequence document is corrupt, starting from empty", "backup", backup, "error", err)
			}),
		),
	}
}

// Path returns the document location
func (f *File) Path() string {
	return f.path
}

func (f *File) load(ctx context.Context) (Document, error) {
	doc, err := f.fm.Read(ctx, f.path)
	if err != nil {
		return nil, err
	}
	if *doc == nil {
		return Document{}, nil
	}
	return *doc, nil
}

// loadOrEmpty applies the fail-open policy for reads
func (f *File) loadOrEmpty(ctx context.Context) Document {
	doc, err := f.load(ctx)
	switch {
	case err == nil:
		return doc
	case os.IsNotExist(err):
		return Document{}
	default:
		f.log.Warn("sequence document unreadable, treating as empty", "error", err)
		return Document{}
	}
}

func (f *File) GetLast(ctx context.Context, prefix string) (int, bool) {
	return lastFrom(f.Lookup(ctx, prefix))
}

func (f *File) Lookup(ctx context.Context, prefix string) (Value, bool) {
	raw, ok := f.loadOrEmpty(ctx)[prefix]
	return Value{Raw: raw}, ok
}

func (f *File) SetLast(ctx context.Context, prefix string, n int) error {
	err := f.fm.Update(ctx, f.path, func(doc *Document) error {
		if *doc == nil {
			*doc = Document{}
		}
		(*doc)[prefix] = n
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist %q=%d: %w", prefix, n, err)
	}
	return nil
}

// List reports an unreadable document as an error rather than failing open,
// since callers use it to inspect the store itself.
func (f *File) List(ctx context.Context) ([]Record, error) {
	doc, err := f.load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, err
	}
	return doc.records(), nil
}

func (f *File) Close() error { return nil }
