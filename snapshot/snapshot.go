// Package snapshot persists the contents of a refdata.Registry to a Bolt
// file and restores them later. One bucket per record type; keys are the
// big-endian insertion position (so restore preserves order), values are
// msgpack-encoded attribute maps with the identity under "id". Restore goes
// through ReplaceAll, so undeclared fields are auto-declared untyped.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/andreyvit/refdata"
)

// Save writes every collection of the registry into the Bolt file at path,
// replacing any previous snapshot of the same record types.
func Save(path string, reg *refdata.Registry) error {
	bdb, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer bdb.Close()

	return bdb.Update(func(btx *bbolt.Tx) error {
		for _, name := range reg.Names() {
			if err := saveCollection(btx, name, reg.Collection(name)); err != nil {
				return fmt.Errorf("snapshot: %s: %w", name, err)
			}
		}
		return nil
	})
}

func saveCollection(btx *bbolt.Tx, name string, coll *refdata.Collection) error {
	if btx.Bucket([]byte(name)) != nil {
		if err := btx.DeleteBucket([]byte(name)); err != nil {
			return err
		}
	}
	b, err := btx.CreateBucket([]byte(name))
	if err != nil {
		return err
	}

	var key [8]byte
	for pos, r := range coll.All().Records() {
		binary.BigEndian.PutUint64(key[:], uint64(pos))
		data, err := msgpack.Marshal(r.Attributes())
		if err != nil {
			return err
		}
		if err := b.Put(key[:], data); err != nil {
			return err
		}
	}
	return nil
}

// Restore replaces the registry's collections with the snapshot at path.
// Record types present in the snapshot but not in the registry are defined
// on the fly.
func Restore(path string, reg *refdata.Registry) error {
	bdb, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: 10 * time.Second, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer bdb.Close()

	return bdb.View(func(btx *bbolt.Tx) error {
		return btx.ForEach(func(name []byte, b *bbolt.Bucket) error {
			rows, err := loadRows(b)
			if err != nil {
				return fmt.Errorf("snapshot: %s: %w", name, err)
			}
			coll := reg.Collection(string(name))
			if coll == nil {
				coll = reg.Define(string(name))
			}
			return coll.ReplaceAll(rows)
		})
	})
}

func loadRows(b *bbolt.Bucket) ([]map[string]any, error) {
	var rows []map[string]any
	err := b.ForEach(func(k, v []byte) error {
		var row map[string]any
		if err := msgpack.Unmarshal(v, &row); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}
