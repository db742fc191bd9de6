package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

const ticketColumns = `id, title, description, status, priority, created_by, assigned_to, assigned_by, created_at, updated_at, completed_at`

// TicketRepository persists tickets in PostgreSQL.
type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	query := `
		INSERT INTO tickets (id, title, description, status, priority, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedBy,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	created, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return created, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

// UpdateFromStatus writes the transitioned ticket only if the row still
// holds the status the transition started from. A zero-row match means a
// concurrent transition won the race; a follow-up read tells whether the
// ticket vanished or just moved on.
func (r *TicketRepository) UpdateFromStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus) (*domain.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $3,
		    assigned_to = $4,
		    assigned_by = $5,
		    updated_at = $6,
		    completed_at = $7
		WHERE id = $1 AND status = $2
		RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.ID,
		expected,
		ticket.Status,
		ticket.AssignedTo,
		ticket.AssignedBy,
		ticket.UpdatedAt,
		ticket.CompletedAt,
	)

	updated, err := scanTicket(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	if _, getErr := r.GetByID(ctx, ticket.ID); getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.ErrTicketWrongStatus
}

func (r *TicketRepository) ListAll(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR priority = $2)
		ORDER BY created_at DESC`

	status, priority := filterArgs(filter)
	return r.list(ctx, query, status, priority)
}

func (r *TicketRepository) ListByCreator(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE created_by = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR priority = $3)
		ORDER BY created_at DESC`

	status, priority := filterArgs(filter)
	return r.list(ctx, query, userID, status, priority)
}

func (r *TicketRepository) ListByAssignee(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE assigned_to = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR priority = $3)
		ORDER BY created_at DESC`

	status, priority := filterArgs(filter)
	return r.list(ctx, query, userID, status, priority)
}

func (r *TicketRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}

func filterArgs(filter domain.TicketFilter) (status, priority *string) {
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.Priority != nil {
		p := string(*filter.Priority)
		priority = &p
	}
	return status, priority
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.AssignedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
