/*
PURPOSE:
  Persistent capture store backed by bbolt.
  Captures from every run accumulate in one database file.

REQUIREMENTS:
  User-specified:
  - Keep captures across runs and let the user dump or clear them.

  Implementation-discovered:
  - Seq restarts at 1 each run, so keys come from the bucket sequence.
  - Keys are big-endian so cursor order is insertion order.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Open (via internal/host), internal/cli dump
  - Consumes: internal/model.Capture

ERROR HANDLING:
  - OpenBoltStore wraps its error with the path.
  - A corrupt record fails Dump with its key.

IMPLEMENTATION RULES:
  - One bucket ("captures"). Values are JSON.

USAGE:
  bs, err := output.OpenBoltStore("./captures/captures.db")
  defer bs.Close()

SELF-HEALING INSTRUCTIONS:
  - If Open hangs, another process holds the file lock.

RELATED FILES:
  - internal/output/sink.go
  - internal/cli/dump.go

MAINTENANCE:
  - Update when captures gain fields that need indexing.
*/

package output

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/daryltucker/printf-redirect/internal/model"
)

const capturesBucket = "captures"

// BoltStore keeps captures in a bbolt database keyed by sequence number.
// Unlike the file sinks it is appended to across runs.
type BoltStore struct {
	db *bolt.DB
	mu sync.Mutex
}

// OpenBoltStore opens (or creates) the store at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture store %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(capturesBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Path returns the database file.
func (bs *BoltStore) Path() string {
	return bs.db.Path()
}

// Write stores c. Sequence numbers restart with every host, so the key is
// the bucket's own sequence rather than c.Seq.
func (bs *BoltStore) Write(c model.Capture) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(capturesBucket))
		id, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(&c)
		if err != nil {
			return err
		}
		return bucket.Put(seqKey(id), encoded)
	})
}

// Dump returns every stored capture in insertion order.
func (bs *BoltStore) Dump() ([]model.Capture, error) {
	var out []model.Capture
	err := bs.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(capturesBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var c model.Capture
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("capture %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, c)
			return nil
		})
	})
	return out, err
}

// Clear drops every stored capture.
func (bs *BoltStore) Clear() error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	return bs.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(capturesBucket)) != nil {
			if err := tx.DeleteBucket([]byte(capturesBucket)); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket([]byte(capturesBucket))
		return err
	})
}

// Close closes the database.
func (bs *BoltStore) Close() error {
	return bs.db.Close()
}

// StoreExists reports whether a capture store file is present at path.
func StoreExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func seqKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}
