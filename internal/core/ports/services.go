package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params domain.UserRegistrationParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// CreateTicketParams defines the required input for creating a new ticket.
type CreateTicketParams struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	CreatedBy   uuid.UUID
}

// AssignTicketParams defines the input for assigning a ticket to an executor.
type AssignTicketParams struct {
	TicketID   uuid.UUID
	ExecutorID uuid.UUID
	AssignedBy uuid.UUID
}

// ResolveTicketParams defines the input for completing or rejecting a ticket.
type ResolveTicketParams struct {
	TicketID   uuid.UUID
	ExecutorID uuid.UUID
}

// TicketService is the sole write path for tickets: it creates them and
// moves them through status transitions under the lifecycle invariants.
type TicketService interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, params AssignTicketParams) (*domain.Ticket, error)
	CompleteTicket(ctx context.Context, params ResolveTicketParams) (*domain.Ticket, error)
	RejectTicket(ctx context.Context, params ResolveTicketParams) (*domain.Ticket, error)
}

// TicketQueryService provides role-scoped read projections over tickets.
type TicketQueryService interface {
	AllTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	TicketsCreatedBy(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error)
	TicketsAssignedTo(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error)
	TicketByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	ActiveExecutors(ctx context.Context) ([]*domain.User, error)
}
