package domain

// Role identifies what a user is allowed to do. Every user carries exactly
// one role, fixed at registration.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleOperator  Role = "operator"
	RoleExecutor  Role = "executor"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleOperator, RoleExecutor:
		return true
	}
	return false
}

// Label returns the human-readable name of the role.
func (r Role) Label() string {
	switch r {
	case RoleApplicant:
		return "Applicant"
	case RoleOperator:
		return "Operator"
	case RoleExecutor:
		return "Executor"
	}
	return string(r)
}

// Action names a role-gated operation exposed by the API.
type Action string

const (
	ActionCreateTicket        Action = "tickets:create"
	ActionViewAllTickets      Action = "tickets:view:all"
	ActionViewOwnTickets      Action = "tickets:view:own"
	ActionViewAssignedTickets Action = "tickets:view:assigned"
	ActionAssignTicket        Action = "tickets:assign"
	ActionResolveTicket       Action = "tickets:resolve"
	ActionListExecutors       Action = "executors:list"
)

// actionRules maps each action to the single role allowed to perform it and
// the reason returned when a caller with a different role is rejected.
var actionRules = map[Action]struct {
	role   Role
	reason string
}{
	ActionCreateTicket:        {RoleApplicant, "Only applicants can create tickets."},
	ActionViewAllTickets:      {RoleOperator, "Only operators can view all tickets."},
	ActionViewOwnTickets:      {RoleApplicant, "Only applicants can view their own tickets."},
	ActionViewAssignedTickets: {RoleExecutor, "Only executors can view tickets assigned to them."},
	ActionAssignTicket:        {RoleOperator, "Only operators can assign executors."},
	ActionResolveTicket:       {RoleExecutor, "Only executors can complete or reject tickets."},
	ActionListExecutors:       {RoleOperator, "Only operators can list executors."},
}

// RequiredRole returns the role an action demands.
func RequiredRole(a Action) (Role, bool) {
	rule, ok := actionRules[a]
	return rule.role, ok
}

// DenialReason returns the human-readable message for rejecting an action.
func DenialReason(a Action) string {
	if rule, ok := actionRules[a]; ok {
		return rule.reason
	}
	return "You do not have permission to perform this action."
}

// Can reports whether a role may perform the given action.
func (r Role) Can(a Action) bool {
	rule, ok := actionRules[a]
	return ok && rule.role == r
}
