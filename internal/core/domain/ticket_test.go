package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()

	ticket, err := NewTicket(TicketParams{
		Title:       "Printer is on fire",
		Description: "The office printer caught fire again.",
		Priority:    PriorityHigh,
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)
	return ticket
}

func TestTicketStatus_IsValid(t *testing.T) {
	valid := []TicketStatus{StatusNew, StatusInProgress, StatusCompleted, StatusRejected}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	invalid := []TicketStatus{"", "open", "NEW", "done"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "expected %q to be invalid", s)
	}
}

func TestTicketStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusNew.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestTicketPriority_IsValid(t *testing.T) {
	for _, p := range []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, p.IsValid())
	}
	for _, p := range []TicketPriority{"", "LOW", "urgent"} {
		assert.False(t, p.IsValid())
	}
}

func TestNewTicket(t *testing.T) {
	creatorID := uuid.New()

	t.Run("creates ticket in status new", func(t *testing.T) {
		ticket, err := NewTicket(TicketParams{
			Title:       "VPN not connecting",
			Description: "Connection drops after a few seconds.",
			Priority:    PriorityMedium,
			CreatedBy:   creatorID,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, ticket.ID)
		assert.Equal(t, StatusNew, ticket.Status)
		assert.Equal(t, creatorID, ticket.CreatedBy)
		assert.Nil(t, ticket.AssignedTo)
		assert.Nil(t, ticket.AssignedBy)
		assert.Nil(t, ticket.CompletedAt)
		assert.False(t, ticket.CreatedAt.IsZero())
	})

	t.Run("validation failures", func(t *testing.T) {
		longTitle := make([]byte, MaxTitleLength+1)
		for i := range longTitle {
			longTitle[i] = 'a'
		}

		tests := []struct {
			name   string
			params TicketParams
			field  string
		}{
			{
				name: "missing title",
				params: TicketParams{
					Description: "something broke",
					Priority:    PriorityLow,
					CreatedBy:   creatorID,
				},
				field: "title",
			},
			{
				name: "title too long",
				params: TicketParams{
					Title:       string(longTitle),
					Description: "something broke",
					Priority:    PriorityLow,
					CreatedBy:   creatorID,
				},
				field: "title",
			},
			{
				name: "missing description",
				params: TicketParams{
					Title:     "broken",
					Priority:  PriorityLow,
					CreatedBy: creatorID,
				},
				field: "description",
			},
			{
				name: "invalid priority",
				params: TicketParams{
					Title:       "broken",
					Description: "something broke",
					Priority:    "urgent",
					CreatedBy:   creatorID,
				},
				field: "priority",
			},
			{
				name: "missing creator",
				params: TicketParams{
					Title:       "broken",
					Description: "something broke",
					Priority:    PriorityLow,
				},
				field: "createdBy",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ticket, err := NewTicket(tt.params)
				assert.Nil(t, ticket)

				var validationErrs *apperrors.ValidationErrors
				require.ErrorAs(t, err, &validationErrs)
				assert.Contains(t, validationErrs.Errors, tt.field)
			})
		}
	})
}

func TestTicket_Assign(t *testing.T) {
	executorID := uuid.New()
	operatorID := uuid.New()

	t.Run("assigns a new ticket", func(t *testing.T) {
		ticket := newTestTicket(t)

		err := ticket.Assign(executorID, operatorID)

		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, ticket.Status)
		require.NotNil(t, ticket.AssignedTo)
		assert.Equal(t, executorID, *ticket.AssignedTo)
		require.NotNil(t, ticket.AssignedBy)
		assert.Equal(t, operatorID, *ticket.AssignedBy)
	})

	t.Run("second assignment fails with wrong status", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))

		err := ticket.Assign(uuid.New(), operatorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketWrongStatus)
		assert.Equal(t, executorID, *ticket.AssignedTo, "original assignment must stand")
	})

	t.Run("terminal tickets cannot be assigned", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))
		require.NoError(t, ticket.Complete(executorID))

		err := ticket.Assign(uuid.New(), operatorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketWrongStatus)
	})
}

func TestTicket_Complete(t *testing.T) {
	executorID := uuid.New()
	operatorID := uuid.New()

	t.Run("completes an assigned ticket", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))

		err := ticket.Complete(executorID)

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, ticket.Status)
		require.NotNil(t, ticket.CompletedAt)
	})

	t.Run("unassigned ticket reports not assigned, not wrong status", func(t *testing.T) {
		ticket := newTestTicket(t)

		err := ticket.Complete(executorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketNotAssigned)
	})

	t.Run("other executor reports not yours", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))

		err := ticket.Complete(uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrTicketNotYours)
		assert.Equal(t, StatusInProgress, ticket.Status)
	})

	t.Run("completing twice fails with wrong status", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))
		require.NoError(t, ticket.Complete(executorID))

		err := ticket.Complete(executorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketWrongStatus)
	})
}

func TestTicket_Reject(t *testing.T) {
	executorID := uuid.New()
	operatorID := uuid.New()

	t.Run("rejects an assigned ticket and sets completed_at", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))

		err := ticket.Reject(executorID)

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, ticket.Status)
		require.NotNil(t, ticket.CompletedAt, "rejection is terminal and timestamps like completion")
	})

	t.Run("rejecting a completed ticket fails", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(executorID, operatorID))
		require.NoError(t, ticket.Complete(executorID))

		err := ticket.Reject(executorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketWrongStatus)
		assert.Equal(t, StatusCompleted, ticket.Status)
	})

	t.Run("unassigned ticket reports not assigned", func(t *testing.T) {
		ticket := newTestTicket(t)

		err := ticket.Reject(executorID)

		assert.ErrorIs(t, err, apperrors.ErrTicketNotAssigned)
	})
}

func TestTicket_Visibility(t *testing.T) {
	creatorID := uuid.New()
	executorID := uuid.New()

	ticket, err := NewTicket(TicketParams{
		Title:       "Keyboard missing keys",
		Description: "The E and R keys are gone.",
		Priority:    PriorityLow,
		CreatedBy:   creatorID,
	})
	require.NoError(t, err)

	assert.True(t, ticket.IsCreatedBy(creatorID))
	assert.False(t, ticket.IsCreatedBy(uuid.New()))

	assert.False(t, ticket.IsAssignedTo(executorID), "unassigned ticket belongs to no executor")

	require.NoError(t, ticket.Assign(executorID, uuid.New()))
	assert.True(t, ticket.IsAssignedTo(executorID))
	assert.False(t, ticket.IsAssignedTo(uuid.New()))
}

func TestParseTicketFilter(t *testing.T) {
	t.Run("valid values are kept", func(t *testing.T) {
		filter := ParseTicketFilter("in_progress", "high")

		require.NotNil(t, filter.Status)
		assert.Equal(t, StatusInProgress, *filter.Status)
		require.NotNil(t, filter.Priority)
		assert.Equal(t, PriorityHigh, *filter.Priority)
	})

	t.Run("invalid values are dropped", func(t *testing.T) {
		filter := ParseTicketFilter("OPEN", "urgent")

		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Priority)
		assert.True(t, filter.IsZero())
	})

	t.Run("empty values mean no filter", func(t *testing.T) {
		assert.True(t, ParseTicketFilter("", "").IsZero())
	})
}

func TestTicketFilter_Matches(t *testing.T) {
	ticket := newTestTicket(t)

	assert.True(t, TicketFilter{}.Matches(ticket))

	status := StatusNew
	assert.True(t, TicketFilter{Status: &status}.Matches(ticket))

	other := StatusCompleted
	assert.False(t, TicketFilter{Status: &other}.Matches(ticket))

	priority := PriorityLow
	assert.False(t, TicketFilter{Priority: &priority}.Matches(ticket))
}
