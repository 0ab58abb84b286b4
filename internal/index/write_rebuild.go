package index

import (
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"mdblog/internal/domain/content"
	"strings"
)

// Rebuild replaces the catalog contents with records.
func (s *Store) Rebuild(records []content.PostRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bPost)
		_ = tx.DeleteBucket(bIdxDate)

		postB, err := tx.CreateBucket(bPost)
		if err != nil {
			return err
		}
		idxDateB, err := tx.CreateBucket(bIdxDate)
		if err != nil {
			return err
		}

		for _, rec := range records {
			if strings.TrimSpace(rec.PostID) == "" {
				continue
			}
			rb, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := postB.Put([]byte(rec.PostID), rb); err != nil {
				return err
			}
			key := makeDatePostKey(rec.Meta.Time, rec.PostID)
			if err := idxDateB.Put(key, []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
}
