package alias

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const createEntriesTable = `
	CREATE TABLE IF NOT EXISTS alias_entries (
		id         BIGSERIAL PRIMARY KEY,
		collection TEXT NOT NULL,
		payload    JSONB NOT NULL
	)
`

// OpenDB opens and pings the Postgres database at databaseURL
// and creates the alias_entries table if it does not exist.
func OpenDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(8)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create alias_entries: %w", err)
	}
	return db, nil
}

var _ Store[BlacklistEntry] = new(PostgresStore[BlacklistEntry])

// PostgresStore keeps the entities of a collection
// as JSONB rows of the alias_entries table.
type PostgresStore[E any] struct {
	db         *sql.DB
	collection string
}

// NewPostgresStore returns a store for the collection
// with the passed name. The database must have been opened with OpenDB.
func NewPostgresStore[E any](db *sql.DB, collection string) *PostgresStore[E] {
	return &PostgresStore[E]{db: db, collection: KeyPrefix + collection}
}

func (s *PostgresStore[E]) List(ctx context.Context) ([]E, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM alias_entries WHERE collection = $1 ORDER BY id`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.collection, err)
	}
	defer rows.Close()

	entities := []E{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", s.collection, err)
		}
		var entity E
		if err := json.Unmarshal(payload, &entity); err != nil {
			return nil, fmt.Errorf("unmarshal %s entry: %w", s.collection, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.collection, err)
	}
	return entities, nil
}

func (s *PostgresStore[E]) Add(ctx context.Context, entity E) error {
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", s.collection, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO alias_entries (collection, payload) VALUES ($1, $2::jsonb)`, s.collection, string(payload))
	if err != nil {
		return fmt.Errorf("add to %s: %w", s.collection, err)
	}
	return nil
}

func (s *PostgresStore[E]) Remove(ctx context.Context, entity E) (bool, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("marshal %s entry: %w", s.collection, err)
	}
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM alias_entries
		WHERE id = (
			SELECT id FROM alias_entries
			WHERE collection = $1 AND payload = $2::jsonb
			ORDER BY id LIMIT 1
		)
	`, s.collection, string(payload))
	if err != nil {
		return false, fmt.Errorf("remove from %s: %w", s.collection, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove from %s: %w", s.collection, err)
	}
	return n > 0, nil
}

func (s *PostgresStore[E]) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alias_entries WHERE collection = $1`, s.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.collection, err)
	}
	return n, nil
}
