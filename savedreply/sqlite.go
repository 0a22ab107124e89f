package savedreply

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	schema = `CREATE TABLE IF NOT EXISTS saved_replies (
	board TEXT NOT NULL,
	no INTEGER NOT NULL,
	PRIMARY KEY (board, no)
)`
	selectAll = `SELECT board, no FROM saved_replies`
	insertOne = `INSERT OR IGNORE INTO saved_replies (board, no) VALUES (?, ?)`
)

// Load reads the whole saved_replies table from SQLite database at path into
// memory. Database is opened read-only, so parsing never touches disk.
func Load(ctx context.Context, path string, log *zap.Logger) (set *Set, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("savedreply")

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open saved replies database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
		if err != nil {
			set = nil
		}
	}()
	conn.SetInterrupt(ctx.Done())

	set = NewSet()
	err = sqlitex.Execute(conn, selectAll,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			set.Add(stmt.ColumnText(0), int(stmt.ColumnInt64(1)))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read saved replies: %w", err)
	}

	log.Debug("Saved replies loaded", zap.String("database", path), zap.Int("count", set.Len()))
	return set, nil
}

// Save records posts as saved in SQLite database at path creating database and
// table when necessary.
func Save(ctx context.Context, path, board string, nos ...int) (err error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("unable to open saved replies database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()
	conn.SetInterrupt(ctx.Done())

	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		return fmt.Errorf("unable to create saved replies table: %w", err)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("unable to start transaction: %w", err)
	}
	defer endFn(&err)

	for _, no := range nos {
		if err = sqlitex.Execute(conn, insertOne, &sqlitex.ExecOptions{Args: []any{board, no}}); err != nil {
			return fmt.Errorf("unable to save reply /%s/%d: %w", board, no, err)
		}
	}
	return nil
}
