package filesystem

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/storage"
)

type key struct {
	file     string
	sentence int
}

// AnnotationStore keeps all annotations in a single JSON lines file. The
// file is read once and rewritten on every Upsert.
type AnnotationStore struct {
	path string

	mu          sync.RWMutex
	annotations map[key]annotation.Label
}

var _ storage.AnnotationRepository = (*AnnotationStore)(nil)

// NewAnnotationStore loads the annotations of the JSON lines file at path. A
// missing file is an empty store.
func NewAnnotationStore(path string) (*AnnotationStore, error) {
	s := &AnnotationStore{path: path, annotations: map[key]annotation.Label{}}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var a annotation.Annotation
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("JSON decoding error: %s line %d: %w", path, lineNum, err)
		}
		s.annotations[key{a.File, a.Sentence}] = a.Label
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return s, nil
}

func (s *AnnotationStore) Get(file string, sentence int) (annotation.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.annotations[key{file, sentence}]
	if !ok {
		return annotation.Annotation{}, fmt.Errorf("%w: %s/%d", storage.ErrNotFound, file, sentence)
	}
	return annotation.Annotation{File: file, Sentence: sentence, Label: l}, nil
}

func (s *AnnotationStore) Count(file string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.annotations {
		if k.file == file {
			n++
		}
	}
	return n, nil
}

func (s *AnnotationStore) ByFile(file string) ([]annotation.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []annotation.Annotation
	for _, a := range s.sorted() {
		if a.File == file {
			list = append(list, a)
		}
	}
	return list, nil
}

func (s *AnnotationStore) All() ([]annotation.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(), nil
}

func (s *AnnotationStore) Upsert(a annotation.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{a.File, a.Sentence}
	prev, existed := s.annotations[k]
	s.annotations[k] = a.Label

	if err := s.write(); err != nil {
		// keep memory and disk in sync
		if existed {
			s.annotations[k] = prev
		} else {
			delete(s.annotations, k)
		}
		return err
	}
	return nil
}

// sorted returns the annotations ordered by file and sentence. Callers hold
// the lock.
func (s *AnnotationStore) sorted() []annotation.Annotation {
	list := make([]annotation.Annotation, 0, len(s.annotations))
	for k, l := range s.annotations {
		list = append(list, annotation.Annotation{File: k.file, Sentence: k.sentence, Label: l})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].File != list[j].File {
			return list[i].File < list[j].File
		}
		return list[i].Sentence < list[j].Sentence
	})
	return list
}

// write replaces the file with one JSON object per annotation and line.
func (s *AnnotationStore) write() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, a := range s.sorted() {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".annotations-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
