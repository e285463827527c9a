package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/aki/qrlabel/internal/core/logger"
)

var sequencesBucket = []byte("sequences")

// bbolt rejects empty keys and digits-only articles have an empty prefix,
// so every key carries a one byte marker.
const keyMarker = '='

func boltKey(prefix string) []byte {
	return append([]byte{keyMarker}, prefix...)
}

// Bolt stores one key per prefix in a bbolt bucket. Every SetLast is its own
// committed transaction. Values are JSON scalars so that hand-edited or
// migrated non-integer values still decode.
type Bolt struct {
	db  *bolt.DB
	log logger.Logger
}

// OpenBolt opens or creates the database at path
func OpenBolt(path string, log logger.Logger) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %q: %w", path, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		if boltCorrupt(err) {
			return nil, fmt.Errorf("%w: open %q: %v", ErrCorrupt, path, err)
		}
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sequencesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", sequencesBucket, err)
	}

	return &Bolt{
		db:  db,
		log: logger.OrNop(log).With("store", "bolt", "path", path),
	}, nil
}

func boltCorrupt(err error) bool {
	return errors.Is(err, bolt.ErrInvalid) ||
		errors.Is(err, bolt.ErrVersionMismatch) ||
		errors.Is(err, bolt.ErrChecksum) ||
		err.Error() == "file size too small"
}

func decodeScalar(data []byte) any {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(data)
	}
	return v
}

func (b *Bolt) GetLast(ctx context.Context, prefix string) (int, bool) {
	return lastFrom(b.Lookup(ctx, prefix))
}

func (b *Bolt) Lookup(_ context.Context, prefix string) (Value, bool) {
	var (
		value Value
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sequencesBucket)
		if bucket == nil {
			return nil
		}
		data := bucket.Get(boltKey(prefix))
		if data == nil {
			return nil
		}
		value = Value{Raw: decodeScalar(data)}
		found = true
		return nil
	})
	if err != nil {
		b.log.Warn("sequence lookup failed, treating as no record", "prefix", prefix, "error", err)
		return Value{}, false
	}
	return value, found
}

func (b *Bolt) SetLast(_ context.Context, prefix string, n int) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sequencesBucket)
		if err != nil {
			return err
		}
		return bucket.Put(boltKey(prefix), []byte(strconv.Itoa(n)))
	})
	if err != nil {
		return fmt.Errorf("failed to persist %q=%d: %w", prefix, n, err)
	}
	return nil
}

func (b *Bolt) List(context.Context) ([]Record, error) {
	var records []Record
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sequencesBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			if len(k) == 0 || k[0] != keyMarker {
				return nil
			}
			records = append(records, Record{Prefix: string(k[1:]), Value: Value{Raw: decodeScalar(v)}})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Put writes a raw JSON scalar for prefix. It exists for migrations and tests.
func (b *Bolt) Put(prefix string, raw []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sequencesBucket).Put(boltKey(prefix), raw)
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
