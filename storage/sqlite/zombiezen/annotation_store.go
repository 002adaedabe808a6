package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type AnnotationStore struct {
	pool *sqlitex.Pool
}

var _ storage.AnnotationRepository = (*AnnotationStore)(nil)

func NewAnnotationStore(pool *sqlitex.Pool) *AnnotationStore {
	return &AnnotationStore{pool: pool}
}

func (h *AnnotationStore) Get(file string, sentence int) (annotation.Annotation, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return annotation.Annotation{}, err
	}
	defer h.pool.Put(conn)

	a := annotation.Annotation{File: file, Sentence: sentence}
	found := false
	err = sqlitex.Execute(conn, "SELECT message FROM annotations WHERE file = ? AND sentence = ? LIMIT 1", &sqlitex.ExecOptions{
		Args: []interface{}{file, sentence},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			a.Label = annotation.Label(stmt.ColumnText(0))
			found = true
			return nil
		},
	})
	if err != nil {
		return annotation.Annotation{}, err
	}

	if !found {
		return annotation.Annotation{}, fmt.Errorf("%w: %s/%d", storage.ErrNotFound, file, sentence)
	}

	return a, nil
}

func (h *AnnotationStore) Count(file string) (int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	count := 0
	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM annotations WHERE file = ?", &sqlitex.ExecOptions{
		Args: []interface{}{file},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (h *AnnotationStore) ByFile(file string) ([]annotation.Annotation, error) {
	return h.list("SELECT file, sentence, message FROM annotations WHERE file = ? ORDER BY sentence", file)
}

func (h *AnnotationStore) All() ([]annotation.Annotation, error) {
	return h.list("SELECT file, sentence, message FROM annotations ORDER BY file, sentence")
}

func (h *AnnotationStore) list(query string, args ...interface{}) ([]annotation.Annotation, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var annotations []annotation.Annotation
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			annotations = append(annotations, annotation.Annotation{
				File:     stmt.ColumnText(0),
				Sentence: stmt.ColumnInt(1),
				Label:    annotation.Label(stmt.ColumnText(2)),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return annotations, nil
}

func (h *AnnotationStore) Upsert(a annotation.Annotation) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO annotations (file, sentence, message, updated)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(file, sentence) DO UPDATE SET
			message = excluded.message,
			updated = excluded.updated
	`, &sqlitex.ExecOptions{
		Args: []interface{}{a.File, a.Sentence, string(a.Label)},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert annotation %s/%d: %w", a.File, a.Sentence, err)
	}

	return nil
}
