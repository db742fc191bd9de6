package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
)

// Field length limits for ticket validation.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 10000
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusNew        TicketStatus = "new"
	StatusInProgress TicketStatus = "in_progress"
	StatusCompleted  TicketStatus = "completed"
	StatusRejected   TicketStatus = "rejected"
)

// IsValid reports whether the status is one of the known states.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Label returns the human-readable display name of the status.
func (s TicketStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// IsValid reports whether the priority is one of the known values.
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the human-readable display name of the priority.
func (p TicketPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return string(p)
}

// Ticket is the core helpdesk entity. Status moves monotonically along
// new -> in_progress -> {completed | rejected}; assignment happens exactly
// once, on the new -> in_progress transition, and is never cleared.
type Ticket struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatedBy   uuid.UUID
	AssignedTo  *uuid.UUID
	AssignedBy  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// TicketParams holds the input for creating a new ticket.
type TicketParams struct {
	Title       string
	Description string
	Priority    TicketPriority
	CreatedBy   uuid.UUID
}

// NewTicket creates a new ticket in status new with a generated id.
func NewTicket(params TicketParams) (*Ticket, error) {
	errs := apperrors.NewValidationErrors()

	if params.Title == "" {
		errs.Add("title", "Title is required")
	} else if len(params.Title) > MaxTitleLength {
		errs.Add("title", "Title must be 255 characters or less")
	}

	if params.Description == "" {
		errs.Add("description", "Description is required")
	} else if len(params.Description) > MaxDescriptionLength {
		errs.Add("description", "Description exceeds maximum length")
	}

	if !params.Priority.IsValid() {
		errs.Add("priority", "Priority must be one of: low, medium, high")
	}

	if params.CreatedBy == uuid.Nil {
		errs.Add("createdBy", "Creator is required")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	now := time.Now().UTC()
	return &Ticket{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Status:      StatusNew,
		Priority:    params.Priority,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Assign moves a new ticket to in_progress, recording the executor and the
// operator who performed the assignment. The already-assigned guard is
// unreachable while the status check holds; it stays as a second line of
// defense for the assigned-exactly-once invariant.
func (t *Ticket) Assign(executorID, operatorID uuid.UUID) error {
	if t.Status != StatusNew {
		return apperrors.ErrTicketWrongStatus
	}
	if t.AssignedTo != nil {
		return apperrors.ErrTicketAlreadyAssigned
	}

	t.AssignedTo = &executorID
	t.AssignedBy = &operatorID
	t.Status = StatusInProgress
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete marks an in_progress ticket as completed by its assigned executor.
// Guards run in a fixed order: assignment presence, then ownership, then
// status, so an unassigned ticket reports NotAssigned rather than WrongStatus.
func (t *Ticket) Complete(executorID uuid.UUID) error {
	return t.resolve(executorID, StatusCompleted)
}

// Reject marks an in_progress ticket as rejected by its assigned executor.
// Same guards and ordering as Complete.
func (t *Ticket) Reject(executorID uuid.UUID) error {
	return t.resolve(executorID, StatusRejected)
}

func (t *Ticket) resolve(executorID uuid.UUID, target TicketStatus) error {
	if t.AssignedTo == nil {
		return apperrors.ErrTicketNotAssigned
	}
	if *t.AssignedTo != executorID {
		return apperrors.ErrTicketNotYours
	}
	if t.Status != StatusInProgress {
		return apperrors.ErrTicketWrongStatus
	}

	now := time.Now().UTC()
	t.Status = target
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// IsCreatedBy reports whether the ticket was created by the given user.
func (t *Ticket) IsCreatedBy(userID uuid.UUID) bool {
	return t.CreatedBy == userID
}

// IsAssignedTo reports whether the ticket is assigned to the given user.
func (t *Ticket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
