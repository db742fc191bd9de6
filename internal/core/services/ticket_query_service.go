package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

// TicketQueryService implements read-only projections over the ticket
// store. Role authorization is the HTTP layer's job; this layer only scopes
// the data (all / created-by / assigned-to).
type TicketQueryService struct {
	ticketRepo ports.TicketRepository
	userRepo   ports.UserRepository
}

var _ ports.TicketQueryService = (*TicketQueryService)(nil)

// NewTicketQueryService creates a new ticket query service.
func NewTicketQueryService(ticketRepo ports.TicketRepository, userRepo ports.UserRepository) ports.TicketQueryService {
	return &TicketQueryService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// AllTickets returns every ticket, newest first.
func (s *TicketQueryService) AllTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	return s.ticketRepo.ListAll(ctx, filter)
}

// TicketsCreatedBy returns tickets created by the given user.
func (s *TicketQueryService) TicketsCreatedBy(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	return s.ticketRepo.ListByCreator(ctx, userID, filter)
}

// TicketsAssignedTo returns tickets assigned to the given user.
func (s *TicketQueryService) TicketsAssignedTo(ctx context.Context, userID uuid.UUID, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	return s.ticketRepo.ListByAssignee(ctx, userID, filter)
}

// TicketByID returns a single ticket or apperrors.ErrTicketNotFound.
func (s *TicketQueryService) TicketByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

// ActiveExecutors returns all active users with the executor role; this is
// the pool AssignTicket validates its target against.
func (s *TicketQueryService) ActiveExecutors(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListActiveExecutors(ctx)
}
