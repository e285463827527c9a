package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aki/qrlabel/internal/core/logger"
)

// sqliteSidecars are the files SQLite keeps next to a WAL-mode database
var sqliteSidecars = []string{"-wal", "-shm"}

// openRecovering runs open and, when it reports ErrCorrupt, moves the
// database aside to "<path>.corrupt-<unixnano>" and opens a fresh one. If the
// database cannot be moved or recreated the store runs in memory for this
// process. Errors other than ErrCorrupt are returned unchanged.
func openRecovering(path string, log logger.Logger, sidecars []string, open func() (Store, error)) (Store, error) {
	s, err := open()
	if err == nil || !errors.Is(err, ErrCorrupt) {
		return s, err
	}

	log = logger.OrNop(log).With("path", path)

	backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().UnixNano())
	if renameErr := os.Rename(path, backup); renameErr != nil {
		log.Warn("sequence database is corrupt and could not be moved aside, numbering is kept in memory only",
			"error", err, "rename_error", renameErr)
		return NewMemory(), nil
	}
	for _, suffix := range sidecars {
		if _, statErr := os.Stat(path + suffix); statErr == nil {
			_ = os.Rename(path+suffix, backup+suffix)
		}
	}
	log.Warn("sequence database is corrupt, starting from empty", "backup", backup, "error", err)

	s, err = open()
	if err != nil {
		log.Warn("failed to recreate sequence database, numbering is kept in memory only", "error", err)
		return NewMemory(), nil
	}
	return s, nil
}
