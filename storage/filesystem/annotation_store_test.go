package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/storage"
)

func TestAnnotationStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")

	s, err := NewAnnotationStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Get("movie_a", 0); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for _, a := range []annotation.Annotation{
		{File: "movie_b", Sentence: 1, Label: annotation.OK},
		{File: "movie_a", Sentence: 4, Label: annotation.PoorFrame},
		{File: "movie_a", Sentence: 1, Label: annotation.ErrSentence},
		{File: "movie_a", Sentence: 4, Label: annotation.OK},
	} {
		if err := s.Upsert(a); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	n, _ := s.Count("movie_a")
	if n != 2 {
		t.Errorf("expected 2 annotations, got %d", n)
	}

	byFile, _ := s.ByFile("movie_a")
	if len(byFile) != 2 || byFile[0].Sentence != 1 || byFile[1].Label != annotation.OK {
		t.Errorf("unexpected annotations %+v", byFile)
	}

	// one annotation per line
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), content)
	}
	if lines[0] != `{"file":"movie_a","sentence":1,"label":"err_sent"}` {
		t.Errorf("unexpected first line %s", lines[0])
	}

	// reopen
	again, err := NewAnnotationStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, _ := again.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 annotations, got %d", len(all))
	}
	a, err := again.Get("movie_a", 4)
	if err != nil || a.Label != annotation.OK {
		t.Errorf("expected ok, got %+v %v", a, err)
	}
}

func TestNewAnnotationStoreInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewAnnotationStore(path); err == nil {
		t.Error("expected error")
	}
}

func TestNewAnnotationStoreJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	content := `{"file":"movie_a","sentence":0,"label":"ok"}

{"label":"poor_frame","sentence":3,"file":"movie_b"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewAnnotationStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, _ := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 annotations, got %+v", all)
	}
	if a, err := s.Get("movie_b", 3); err != nil || a.Label != annotation.PoorFrame {
		t.Errorf("expected poor_frame, got %+v %v", a, err)
	}
}

func TestNewAnnotationStoreJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := os.WriteFile(path, []byte("[\n{\"file\":\"movie_a\",\"sentence\":0,\"label\":\"ok\"}\n]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewAnnotationStore(path)
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected a decoding error on line 1, got %v", err)
	}
}
