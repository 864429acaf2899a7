package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS storefront_events (
	id             UUID PRIMARY KEY,
	session_id     TEXT NOT NULL,
	aggregate_type TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	data           JSONB NOT NULL,
	version        INTEGER NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS storefront_events_session_idx ON storefront_events (session_id, version);`

// PostgresEventStore persists events consumed from the activity topic.
type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

func (es *PostgresEventStore) EnsureSchema(ctx context.Context) error {
	_, err := es.db.ExecContext(ctx, schema)
	return err
}

// Save inserts an event. Redelivered events are ignored.
func (es *PostgresEventStore) Save(ctx context.Context, event Event) error {
	_, err := es.db.ExecContext(ctx,
		`INSERT INTO storefront_events (id, session_id, aggregate_type, event_type, data, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		event.ID,
		event.SessionID,
		event.AggregateType,
		event.EventType,
		[]byte(event.Data),
		event.Version,
		event.Timestamp,
	)
	return err
}

// GetEventsByType returns every event of one type, oldest first.
func (es *PostgresEventStore) GetEventsByType(ctx context.Context, eventType string) ([]Event, error) {
	return es.query(ctx,
		`SELECT id, session_id, aggregate_type, event_type, data, version, created_at
		 FROM storefront_events
		 WHERE event_type = $1
		 ORDER BY created_at ASC`,
		eventType,
	)
}

func (es *PostgresEventStore) query(ctx context.Context, q string, args ...any) ([]Event, error) {
	rows, err := es.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var data []byte
		if err := rows.Scan(&e.ID, &e.SessionID, &e.AggregateType, &e.EventType, &data, &e.Version, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Data = data
		events = append(events, e)
	}
	return events, rows.Err()
}

// ConnectPostgres opens and pings a pooled connection.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
