package domain

// TicketFilter narrows a ticket listing by equality on status and/or
// priority. Nil fields mean no filtering on that field.
type TicketFilter struct {
	Status   *TicketStatus
	Priority *TicketPriority
}

// IsZero reports whether the filter applies no narrowing at all.
func (f TicketFilter) IsZero() bool {
	return f.Status == nil && f.Priority == nil
}

// Matches reports whether a ticket passes the filter.
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// ParseTicketFilter builds a filter from raw query values. Unknown values
// are dropped rather than rejected, so a bad filter falls open to "no
// filter" instead of failing the request.
func ParseTicketFilter(status, priority string) TicketFilter {
	var filter TicketFilter

	if s := TicketStatus(status); s.IsValid() {
		filter.Status = &s
	}
	if p := TicketPriority(priority); p.IsValid() {
		filter.Priority = &p
	}

	return filter
}
