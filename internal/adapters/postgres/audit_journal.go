package postgres_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx - общее подмножество *pgxpool.Pool и pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createAuditTableQuery = `
CREATE TABLE IF NOT EXISTS admin_audit_log (
	id          BIGSERIAL PRIMARY KEY,
	resource    TEXT        NOT NULL,
	operation   TEXT        NOT NULL,
	entity_id   BIGINT      NOT NULL,
	payload     JSONB       NOT NULL DEFAULT '{}'::jsonb,
	trace_id    TEXT        NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS admin_audit_log_occurred_at_idx ON admin_audit_log (occurred_at DESC);`

// PostgresAuditJournal - журнал мутаций в таблице admin_audit_log.
type PostgresAuditJournal struct {
	db dbtx
}

var (
	_ port.MutationSinkPort = (*PostgresAuditJournal)(nil)
	_ port.AuditJournalPort = (*PostgresAuditJournal)(nil)
)

func NewPostgresAuditJournal(db dbtx) (*PostgresAuditJournal, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	return &PostgresAuditJournal{db: db}, nil
}

// EnsureSchema создает таблицу журнала, если ее еще нет.
func (r *PostgresAuditJournal) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createAuditTableQuery); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}
	return nil
}

func (r *PostgresAuditJournal) RecordMutation(ctx context.Context, record domain.MutationRecord) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresAuditJournal",
		"method":    "RecordMutation",
		"resource":  record.Resource,
		"operation": record.Operation,
		"entity_id": record.EntityID,
	})

	payload := record.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		repoLogger.Error("Failed to marshal payload", err, nil)
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	occurredAt := record.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	query := `INSERT INTO admin_audit_log (resource, operation, entity_id, payload, trace_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query,
		record.Resource, record.Operation, record.EntityID, payloadJSON, record.TraceID, occurredAt,
	); err != nil {
		repoLogger.Error("Failed to insert audit record", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	repoLogger.Debug("Audit record stored", nil)
	return nil
}

// FindPaginated возвращает записи журнала от новых к старым.
func (r *PostgresAuditJournal) FindPaginated(ctx context.Context, limit, offset int) (*domain.AuditPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresAuditJournal",
		"method":    "FindPaginated",
		"limit":     limit,
		"offset":    offset,
	})

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM admin_audit_log"
	if err := r.db.QueryRow(ctx, countQuery).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count audit records", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count audit records: %w", err)
	}

	page := &domain.AuditPage{
		Records:    []domain.MutationRecord{},
		TotalCount: totalCount,
		Limit:      limit,
		Offset:     offset,
	}
	if totalCount == 0 {
		return page, nil
	}

	dataQuery := `SELECT resource, operation, entity_id, payload, trace_id, occurred_at
		FROM admin_audit_log ORDER BY occurred_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, dataQuery, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query audit records", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec         domain.MutationRecord
			payloadJSON []byte
		)
		if err := rows.Scan(&rec.Resource, &rec.Operation, &rec.EntityID, &payloadJSON, &rec.TraceID, &rec.OccurredAt); err != nil {
			repoLogger.Error("Failed to scan audit row", err, nil)
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &rec.Payload); err != nil {
				repoLogger.Warn("Audit payload is not a JSON object", port.Fields{"error": err.Error()})
			}
		}
		page.Records = append(page.Records, rec)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during audit rows iteration", err, nil)
		return nil, fmt.Errorf("error during audit rows iteration: %w", err)
	}

	return page, nil
}
