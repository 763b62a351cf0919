package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
)

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// exportArchive implements driven.ExportArchive.
type exportArchive struct {
	store *Store
}

var _ driven.ExportArchive = (*exportArchive)(nil)

// Record appends an export. A missing ID is generated.
func (a *exportArchive) Record(ctx context.Context, record domain.ExportRecord) error {
	if record.SessionID == "" {
		return fmt.Errorf("%w: export record without session id", domain.ErrInvalidInput)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("encoding export payload: %w", err)
	}

	_, err = a.store.db.ExecContext(ctx, `
		INSERT INTO exports (id, session_id, chunk_count, annotated_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.SessionID, record.ChunkCount, record.AnnotatedCount,
		string(payload), record.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// List returns archived exports, newest first.
func (a *exportArchive) List(ctx context.Context, sessionID string, limit int) ([]domain.ExportRecord, error) {
	query := `
		SELECT id, session_id, chunk_count, annotated_count, payload, created_at
		FROM exports
	`
	var args []any
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	records := []domain.ExportRecord{}
	for rows.Next() {
		record, err := scanExportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}

	return records, nil
}

// Close closes the underlying store.
func (a *exportArchive) Close() error {
	return a.store.Close()
}

// scanExportRecord scans a single export row.
func scanExportRecord(rows *sql.Rows) (*domain.ExportRecord, error) {
	var (
		record    domain.ExportRecord
		payload   string
		createdAt string
	)

	if err := rows.Scan(&record.ID, &record.SessionID, &record.ChunkCount,
		&record.AnnotatedCount, &payload, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning export: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &record.Payload); err != nil {
		return nil, fmt.Errorf("decoding export payload %s: %w", record.ID, err)
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing export time %s: %w", record.ID, err)
	}
	record.CreatedAt = t

	return &record, nil
}
