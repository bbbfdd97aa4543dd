package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"auralis-cli/internal/model"
)

// ErrNotFound is returned when a keyed lookup, update or delete matches no row.
var ErrNotFound = errors.New("not found")

// Store owns every entity record. All access goes through Update (single writer)
// or View (snapshot read); callers never hold rows across transactions.
type Store struct {
	Dir string

	// Now is the clock used to stamp transactions. Defaults to time.Now.
	Now func() time.Time

	db *sql.DB
	mu sync.Mutex
}

// Open creates dir if needed, opens the SQLite database inside it and applies the schema.
func Open(ctx context.Context, dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store dir is required")
	}
	s := &Store{Dir: dir, Now: time.Now}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

func (s *Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Update runs fn inside one write transaction. Writers are serialized so two
// concurrent commands on the same entity never interleave. If fn returns an
// error nothing is committed.
func (s *Store) Update(ctx context.Context, fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, fn)
}

// View runs fn inside a read transaction; it observes either the state before
// or after any concurrent Update, never a partial one.
func (s *Store) View(ctx context.Context, fn func(*Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(*Tx) error) error {
	if s == nil || s.db == nil {
		return errors.New("store is closed")
	}
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = sqlTx.Rollback() }()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	tx := &Tx{tx: sqlTx, now: now().UTC()}
	if err := fn(tx); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// Tx is a transactional view of the store. Every write made through a Tx
// shares one timestamp, Tx.Now.
type Tx struct {
	tx  *sql.Tx
	now time.Time
}

func (t *Tx) Now() time.Time { return t.now }

func (t *Tx) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *Tx) execOne(ctx context.Context, query string, args ...any) error {
	n, err := t.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// stamp fills in a generated id and the transaction time for unset fields.
func (t *Tx) stamp(id *string, kind model.Kind, created, updated *time.Time) {
	if strings.TrimSpace(*id) == "" {
		*id = NewID(kind)
	}
	if created.IsZero() {
		*created = t.now
	}
	if updated.IsZero() {
		*updated = *created
	}
}
