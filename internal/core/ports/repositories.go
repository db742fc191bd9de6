package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
)

// TicketRepository is the persistence port for tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)

	// GetByID returns apperrors.ErrTicketNotFound when no ticket exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)

	// UpdateFromStatus persists a transitioned ticket with a conditional
	// write keyed on the status the ticket held before the transition.
	// When a concurrent transition got there first the write matches zero
	// rows and the method returns apperrors.ErrTicketWrongStatus (or
	// ErrTicketNotFound if the ticket vanished), so exactly one of two
	// racing transitions can win.
	UpdateFromStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus) (*domain.Ticket, error)

	ListAll(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error)
}

// UserRepository is the persistence port for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetActiveExecutor returns apperrors.ErrExecutorNotFound unless the
	// user exists, is active, and carries the executor role.
	GetActiveExecutor(ctx context.Context, id uuid.UUID) (*domain.User, error)

	ListActiveExecutors(ctx context.Context) ([]*domain.User, error)
}
