package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"strings"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const AnnotationsSchema = "annotations.sql"

// NewPool opens a connection pool on the SQLite file at dbPath, one
// connection per CPU. The file is created if missing.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("open annotation database %s: %w", dbPath, err)
	}
	return pool, nil
}

// Open returns a pool on dbPath with every embedded schema applied.
func Open(dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(sqlFiles, "sql/*.sql")
	if err != nil {
		pool.Close()
		return nil, err
	}

	for _, name := range names {
		if err := CreateSchemas(pool, strings.TrimPrefix(name, "sql/")); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return pool, nil
}

// CreateSchemas runs the embedded script schemaName. Scripts only create
// missing tables and indexes, running one twice is harmless.
func CreateSchemas(pool *sqlitex.Pool, schemaName string) error {
	script, err := sqlFiles.ReadFile(path.Join("sql", schemaName))
	if err != nil {
		return fmt.Errorf("schema %s: %w", schemaName, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("schema %s: %w", schemaName, err)
	}
	return nil
}
