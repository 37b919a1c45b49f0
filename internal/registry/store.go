package registry

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound reports a source key with no stored quiz.
var ErrNotFound = errors.New("registry: quiz not found")

// Record is an uploaded quiz as persisted: its wire payload plus the
// behavior the payload does not carry.
type Record struct {
	Source    string  `json:"source"`
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Shuffle   bool    `json:"shuffle"`
	Payload   []byte  `json:"-"`
	CreatedAt int64   `json:"created_at,omitempty"`
}

// Store persists uploaded quizzes.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, source string) (Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
}

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(ctx context.Context, rec Record) error {
	shuffle := 0
	if rec.Shuffle {
		shuffle = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO quizzes (source,name,threshold,shuffle,record_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (source) DO UPDATE SET name=EXCLUDED.name, threshold=EXCLUDED.threshold, shuffle=EXCLUDED.shuffle, record_json=EXCLUDED.record_json`,
		rec.Source, rec.Name, rec.Threshold, shuffle, string(rec.Payload), time.Now().Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, source string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT source,name,threshold,shuffle,record_json,created_at FROM quizzes WHERE source=$1`, source)
	return scanRecord(row)
}

func (s *SQLStore) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT source,name,threshold,shuffle,record_json,created_at FROM quizzes
		ORDER BY created_at DESC, source ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var shuffle int
	var payload string
	if err := row.Scan(&rec.Source, &rec.Name, &rec.Threshold, &shuffle, &payload, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Shuffle = shuffle != 0
	rec.Payload = []byte(payload)
	return rec, nil
}
