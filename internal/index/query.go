package index

import (
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"mdblog/internal/domain/content"
	"sort"
	"time"
)

// All returns every record, oldest first.
func (s *Store) All() ([]content.PostRecord, error) {
	return s.collect(nil)
}

// Published returns the records dated strictly before now, newest first.
// Posts sharing a date are ordered by post id.
func (s *Store) Published(now time.Time) ([]content.PostRecord, error) {
	recs, err := s.collect(&now)
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool {
		ti, tj := recs[i].Meta.Time, recs[j].Meta.Time
		if ti.Equal(tj) {
			return recs[i].PostID < recs[j].PostID
		}
		return ti.After(tj)
	})
	return recs, nil
}

// collect walks the date index in ascending order. With a non-nil before it
// stops at the first post that is not dated strictly earlier.
func (s *Store) collect(before *time.Time) ([]content.PostRecord, error) {
	var out []content.PostRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxDate)
		posts := tx.Bucket(bPost)
		if idx == nil || posts == nil {
			return nil
		}
		c := idx.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			t, ok := timeFromDatePostKey(k)
			if !ok {
				continue
			}
			// keys hold whole seconds, never later than the post itself
			if before != nil && !t.Before(*before) {
				break
			}
			raw := posts.Get([]byte(postIDFromDatePostKey(k)))
			if raw == nil {
				continue
			}
			var rec content.PostRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return err
			}
			if before != nil && !rec.Meta.PublishedBefore(*before) {
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}
