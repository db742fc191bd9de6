package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleApplicant, RoleOperator, RoleExecutor} {
		assert.True(t, r.IsValid())
	}
	for _, r := range []Role{"", "admin", "Applicant"} {
		assert.False(t, r.IsValid())
	}
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		action  Action
		allowed Role
	}{
		{ActionCreateTicket, RoleApplicant},
		{ActionViewOwnTickets, RoleApplicant},
		{ActionViewAllTickets, RoleOperator},
		{ActionAssignTicket, RoleOperator},
		{ActionListExecutors, RoleOperator},
		{ActionViewAssignedTickets, RoleExecutor},
		{ActionResolveTicket, RoleExecutor},
	}

	roles := []Role{RoleApplicant, RoleOperator, RoleExecutor}

	for _, tt := range tests {
		for _, r := range roles {
			if r == tt.allowed {
				assert.True(t, r.Can(tt.action), "%s should allow %s", r, tt.action)
			} else {
				assert.False(t, r.Can(tt.action), "%s should deny %s", r, tt.action)
			}
		}
	}
}

func TestDenialReason(t *testing.T) {
	assert.Equal(t, "Only applicants can create tickets.", DenialReason(ActionCreateTicket))
	assert.Equal(t, "Only operators can assign executors.", DenialReason(ActionAssignTicket))
	assert.NotEmpty(t, DenialReason(Action("unknown:action")))
}
