package store

import (
	"fmt"
	"strings"

	"github.com/aki/qrlabel/internal/core/logger"
)

// Driver names accepted by Open
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Drivers lists the supported driver names
var Drivers = []string{DriverFile, DriverBolt, DriverSQLite, DriverMemory}

// Options selects and configures a backend
type Options struct {
	Driver string
	Path   string
	Logger logger.Logger
}

// Open creates the Store described by opts. A corrupt bolt or sqlite
// database is moved aside and replaced by an empty one.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFile(opts.Path, opts.Logger), nil
	case DriverBolt:
		if opts.Path == "" {
			return nil, fmt.Errorf("bolt store requires a path")
		}
		return openRecovering(opts.Path, opts.Logger, nil, func() (Store, error) {
			s, err := OpenBolt(opts.Path, opts.Logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		})
	case DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store requires a path")
		}
		return openRecovering(opts.Path, opts.Logger, sqliteSidecars, func() (Store, error) {
			s, err := OpenSQLite(opts.Path, opts.Logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
