package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/realmkit/gmdesk/internal/database"
	"github.com/realmkit/gmdesk/internal/models"
)

// TicketStore defines persistence for open GM tickets. Closing a ticket
// currently deletes its row outright; an archival implementation can be
// substituted here without touching the registry's indexing logic.
type TicketStore interface {
	// Upsert writes the full ticket state, keyed by submitter id.
	Upsert(ctx context.Context, ticket *models.Ticket) error
	// Delete removes the ticket row for a submitter. Deleting a row that
	// does not exist is not an error.
	Delete(ctx context.Context, submitterID uint64) error
	// LoadAll returns every open ticket in original creation order.
	LoadAll(ctx context.Context) ([]*models.Ticket, error)
}

// TicketSQLRepository implements TicketStore on the gm_ticket table.
// The surrogate id column only exists to preserve creation order across
// restarts; submitter_id is the logical key.
type TicketSQLRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *sql.DB) *TicketSQLRepository {
	return &TicketSQLRepository{db: db}
}

// Upsert inserts or updates the row for the ticket's submitter.
func (r *TicketSQLRepository) Upsert(ctx context.Context, ticket *models.Ticket) error {
	if ticket.IsEmpty() {
		return fmt.Errorf("cannot persist ticket with zero submitter id")
	}

	query := database.ConvertPlaceholders(fmt.Sprintf(`
		INSERT INTO gm_ticket (submitter_id, question, response, last_update)
		VALUES (?, ?, ?, ?)
		%s`, database.UpsertConflictClause("submitter_id", []string{"question", "response", "last_update"})))

	if _, err := r.db.ExecContext(ctx, query,
		ticket.SubmitterID, ticket.Question, ticket.Response, ticket.LastUpdate.Unix()); err != nil {
		return fmt.Errorf("failed to upsert ticket for submitter %d: %w", ticket.SubmitterID, err)
	}

	return nil
}

// Delete removes the row for a submitter. Idempotent.
func (r *TicketSQLRepository) Delete(ctx context.Context, submitterID uint64) error {
	query := database.ConvertPlaceholders(`DELETE FROM gm_ticket WHERE submitter_id = ?`)

	if _, err := r.db.ExecContext(ctx, query, submitterID); err != nil {
		return fmt.Errorf("failed to delete ticket for submitter %d: %w", submitterID, err)
	}

	return nil
}

// LoadAll performs the startup full scan, ordered by the insertion id so
// tickets come back in the order they were filed.
func (r *TicketSQLRepository) LoadAll(ctx context.Context) ([]*models.Ticket, error) {
	query := database.ConvertPlaceholders(`
		SELECT submitter_id, question, response, last_update
		FROM gm_ticket
		ORDER BY id ASC`)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		var (
			ticket     models.Ticket
			lastUpdate int64
		)
		if err := rows.Scan(&ticket.SubmitterID, &ticket.Question, &ticket.Response, &lastUpdate); err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		ticket.LastUpdate = time.Unix(lastUpdate, 0)
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tickets, nil
}

// EnsureSchema creates the gm_ticket table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	var idColumn string
	switch {
	case database.IsMySQL():
		idColumn = "id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case database.IsPostgreSQL():
		idColumn = "id BIGSERIAL PRIMARY KEY"
	default:
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS gm_ticket (
			%s,
			submitter_id BIGINT NOT NULL UNIQUE,
			question TEXT NOT NULL,
			response TEXT NOT NULL DEFAULT '',
			last_update BIGINT NOT NULL
		)`, idColumn)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create gm_ticket table: %w", err)
	}

	return nil
}
