package storage

import (
	"errors"

	"github.com/revelaction/srlproj/annotation"
)

// ErrNotFound is returned by Get for sentences without annotation.
var ErrNotFound = errors.New("annotation not found")

// AnnotationReader defines read operations for annotation storage
type AnnotationReader interface {
	// Get returns the annotation of a sentence of a data file, or
	// ErrNotFound.
	Get(file string, sentence int) (annotation.Annotation, error)

	// Count returns the number of annotated sentences of a data file.
	Count(file string) (int, error)

	// ByFile returns the annotations of a data file ordered by sentence.
	ByFile(file string) ([]annotation.Annotation, error)

	// All returns every annotation ordered by file and sentence.
	All() ([]annotation.Annotation, error)
}

// AnnotationWriter defines write operations for annotation storage
type AnnotationWriter interface {
	// Upsert stores the annotation, replacing the label of an existing
	// (file, sentence) annotation.
	Upsert(a annotation.Annotation) error
}

// AnnotationRepository combines read and write operations
type AnnotationRepository interface {
	AnnotationReader
	AnnotationWriter
}
