package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/franckalain/healthanalyzer/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// DB stores summaries of completed analyses
type DB interface {
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	GetRecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
	Close() error
}

// SQLiteDB implements the DB interface
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the database at dbPath and applies the schema
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func initializeSchema(db *sql.DB) error {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}

	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("error executing schema: %w", err)
	}
	return nil
}

// SaveAnalysis inserts or replaces an analysis record
func (s *SQLiteDB) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (
			id, category, provider, status, message, item_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			message = excluded.message,
			item_count = excluded.item_count
	`

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, string(record.Category), record.Provider, record.Status,
		record.Message, record.ItemCount, record.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetAnalysis returns the record with the given id, or nil when there is none
func (s *SQLiteDB) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	query := `
		SELECT id, category, provider, status, message, item_count, created_at
		FROM analyses WHERE id = ?
	`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecentAnalyses returns up to limit records, newest first
func (s *SQLiteDB) GetRecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	query := `
		SELECT id, category, provider, status, message, item_count, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*models.AnalysisRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.AnalysisRecord, error) {
	var (
		record    models.AnalysisRecord
		category  string
		createdAt string
	)
	if err := row.Scan(
		&record.ID, &category, &record.Provider, &record.Status,
		&record.Message, &record.ItemCount, &createdAt,
	); err != nil {
		return nil, err
	}

	record.Category = models.Category(category)
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	record.CreatedAt = t
	return &record, nil
}
