package zombiezen

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/storage"
)

func newTestStore(t *testing.T) *AnnotationStore {
	t.Helper()

	pool, err := NewPool(filepath.Join(t.TempDir(), "annotations.db"))
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if err := CreateSchemas(pool, AnnotationsSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	// twice is fine
	if err := CreateSchemas(pool, AnnotationsSchema); err != nil {
		t.Fatalf("failed to create schema twice: %v", err)
	}

	return NewAnnotationStore(pool)
}

func TestAnnotationStore(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("movie_a", 0)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for _, a := range []annotation.Annotation{
		{File: "movie_b", Sentence: 3, Label: annotation.OK},
		{File: "movie_a", Sentence: 2, Label: annotation.PoorSyntax},
		{File: "movie_a", Sentence: 0, Label: annotation.ErrWord},
	} {
		if err := s.Upsert(a); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	a, err := s.Get("movie_a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Label != annotation.PoorSyntax {
		t.Errorf("expected poor_syn, got %s", a.Label)
	}

	// replace the label
	if err := s.Upsert(annotation.Annotation{File: "movie_a", Sentence: 2, Label: annotation.OK}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	a, _ = s.Get("movie_a", 2)
	if a.Label != annotation.OK {
		t.Errorf("expected ok after upsert, got %s", a.Label)
	}

	n, err := s.Count("movie_a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 annotations, got %d", n)
	}

	n, _ = s.Count("missing")
	if n != 0 {
		t.Errorf("expected 0 annotations, got %d", n)
	}

	byFile, err := s.ByFile("movie_a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byFile) != 2 || byFile[0].Sentence != 0 || byFile[1].Sentence != 2 {
		t.Errorf("unexpected annotations %+v", byFile)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].File != "movie_a" || all[2].File != "movie_b" {
		t.Errorf("unexpected annotations %+v", all)
	}
}

func TestOpenReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "annotations.db")

	pool, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	a := annotation.Annotation{File: "movie_a", Sentence: 3, Label: annotation.OK}
	if err := NewAnnotationStore(pool).Upsert(a); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	pool, err = Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer pool.Close()

	got, err := NewAnnotationStore(pool).Get("movie_a", 3)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Label != a.Label {
		t.Errorf("expected label %q, got %q", a.Label, got.Label)
	}
}
