package index

import (
	"errors"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"time"
)

// Store is the post catalog of a single build.
type Store struct {
	db   *bolt.DB
	temp string
}

type OpenOptions struct {
	Path string // empty: a temporary file removed on Close
}

func Open(opt OpenOptions) (*Store, error) {
	path := opt.Path
	var temp string
	if path == "" {
		dir, err := os.MkdirTemp("", "mdblog-index-")
		if err != nil {
			return nil, err
		}
		temp = dir
		path = filepath.Join(dir, "index.db")
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		if temp != "" {
			_ = os.RemoveAll(temp)
		}
		return nil, err
	}
	return &Store{db: db, temp: temp}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.temp != "" {
		err = errors.Join(err, os.RemoveAll(s.temp))
	}
	return err
}
