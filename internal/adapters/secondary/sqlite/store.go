// Package sqlite persists the local deployment journal. One row per pipeline
// run; status and teardown read it back instead of rediscovering remote
// resources.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS deployment_records (
    id           TEXT PRIMARY KEY,
    model_id     TEXT NOT NULL,
    model_name   TEXT NOT NULL,
    image_id     TEXT NOT NULL DEFAULT '',
    service_name TEXT NOT NULL DEFAULT '',
    scoring_uri  TEXT NOT NULL DEFAULT '',
    stage        TEXT NOT NULL,
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
`

// Store manages deployment-record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ ports.DeploymentStore = (*Store)(nil)

// Open initializes or connects to the journal database and applies the
// schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, rec *domain.DeploymentRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO deployment_records (
            id, model_id, model_name, image_id, service_name,
            scoring_uri, stage, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.ModelID,
		rec.ModelName,
		rec.ImageID,
		rec.ServiceName,
		rec.ScoringURI,
		string(rec.Stage),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert deployment record: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeploymentRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, model_id, model_name, image_id, service_name,
                scoring_uri, stage, created_at, updated_at
         FROM deployment_records WHERE id = ?`,
		id.String(),
	)
	return scanRecord(row)
}

// Latest returns the most recently created record.
func (s *Store) Latest(ctx context.Context) (*domain.DeploymentRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, model_id, model_name, image_id, service_name,
                scoring_uri, stage, created_at, updated_at
         FROM deployment_records ORDER BY created_at DESC LIMIT 1`,
	)
	return scanRecord(row)
}

func (s *Store) List(ctx context.Context) ([]*domain.DeploymentRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, model_id, model_name, image_id, service_name,
                scoring_uri, stage, created_at, updated_at
         FROM deployment_records ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list deployment records: %w", err)
	}
	defer rows.Close()

	var recs []*domain.DeploymentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deployment records: %w", err)
	}
	return recs, nil
}

func (s *Store) Update(ctx context.Context, rec *domain.DeploymentRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE deployment_records
         SET model_id = ?, model_name = ?, image_id = ?, service_name = ?,
             scoring_uri = ?, stage = ?, updated_at = ?
         WHERE id = ?`,
		rec.ModelID,
		rec.ModelName,
		rec.ImageID,
		rec.ServiceName,
		rec.ScoringURI,
		string(rec.Stage),
		rec.UpdatedAt.Format(time.RFC3339Nano),
		rec.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update deployment record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deployment record: %w", err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.DeploymentRecord, error) {
	var (
		rec                  domain.DeploymentRecord
		id, stage            string
		createdAt, updatedAt string
	)
	err := row.Scan(&id, &rec.ModelID, &rec.ModelName, &rec.ImageID,
		&rec.ServiceName, &rec.ScoringURI, &stage, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan deployment record: %w", err)
	}

	rec.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse record id %q: %w", id, err)
	}
	rec.Stage = domain.DeploymentStage(stage)
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return &rec, nil
}
