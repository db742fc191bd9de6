package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

// TicketService is the single authority for ticket lifecycle transitions.
// Every mutation is a load, a guarded in-entity transition, and one
// conditional write keyed on the prior status, so concurrent transitions on
// the same ticket serialize at the store: the loser re-surfaces as a
// wrong-status failure instead of clobbering the winner.
type TicketService struct {
	ticketRepo ports.TicketRepository
	userRepo   ports.UserRepository
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service.
func NewTicketService(ticketRepo ports.TicketRepository, userRepo ports.UserRepository) ports.TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// CreateTicket creates a new ticket in status new on behalf of an applicant.
func (s *TicketService) CreateTicket(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(domain.TicketParams{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		CreatedBy:   params.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	return s.ticketRepo.Create(ctx, ticket)
}

// AssignTicket assigns a new ticket to an active executor and moves it to
// in_progress. Checks run in order: ticket exists, executor exists (scoped
// to active executors), ticket is still new, not already assigned.
func (s *TicketService) AssignTicket(ctx context.Context, params ports.AssignTicketParams) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	executor, err := s.userRepo.GetActiveExecutor(ctx, params.ExecutorID)
	if err != nil {
		return nil, err
	}

	if err := ticket.Assign(executor.ID, params.AssignedBy); err != nil {
		return nil, err
	}

	return s.ticketRepo.UpdateFromStatus(ctx, ticket, domain.StatusNew)
}

// CompleteTicket marks an in_progress ticket as completed by its assigned
// executor.
func (s *TicketService) CompleteTicket(ctx context.Context, params ports.ResolveTicketParams) (*domain.Ticket, error) {
	return s.resolveTicket(ctx, params.TicketID, params.ExecutorID, (*domain.Ticket).Complete)
}

// RejectTicket marks an in_progress ticket as rejected by its assigned
// executor. Identical guards to CompleteTicket.
func (s *TicketService) RejectTicket(ctx context.Context, params ports.ResolveTicketParams) (*domain.Ticket, error) {
	return s.resolveTicket(ctx, params.TicketID, params.ExecutorID, (*domain.Ticket).Reject)
}

func (s *TicketService) resolveTicket(
	ctx context.Context,
	ticketID, executorID uuid.UUID,
	transition func(*domain.Ticket, uuid.UUID) error,
) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := transition(ticket, executorID); err != nil {
		return nil, err
	}

	return s.ticketRepo.UpdateFromStatus(ctx, ticket, domain.StatusInProgress)
}
