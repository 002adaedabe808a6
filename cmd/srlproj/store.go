package main

import (
	"errors"
	"strings"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/srlproj/storage"
	"github.com/revelaction/srlproj/storage/filesystem"
	"github.com/revelaction/srlproj/storage/sqlite/zombiezen"
)

// store opens the annotation repository of a command once and releases the
// SQLite pool, if any, on Close.
type store struct {
	pool *sqlitex.Pool
	repo storage.AnnotationRepository
}

// Open returns the annotation repository at path. A path ending in .json is
// a JSON lines file, anything else a SQLite database. Both are created if
// missing.
func (s *store) Open(path string) (storage.AnnotationRepository, error) {
	if s.repo != nil {
		return s.repo, nil
	}

	if path == "" {
		return nil, errors.New("no annotation store given, use -db or set SRLPROJ_DB")
	}

	if strings.HasSuffix(path, ".json") {
		repo, err := filesystem.NewAnnotationStore(path)
		if err != nil {
			return nil, err
		}
		s.repo = repo
		return s.repo, nil
	}

	pool, err := zombiezen.Open(path)
	if err != nil {
		return nil, err
	}

	s.pool = pool
	s.repo = zombiezen.NewAnnotationStore(pool)
	return s.repo, nil
}

func (s *store) Close() error {
	if s.pool != nil {
		return s.pool.Close()
	}
	return nil
}
