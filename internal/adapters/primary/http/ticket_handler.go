package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/hdesk/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/hdesk/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/hdesk/helpdesk-backend/internal/auth"
	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	ticketService ports.TicketService
	queryService  ports.TicketQueryService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService ports.TicketService,
	queryService ports.TicketQueryService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		queryService:  queryService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "ticket"),
	}
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.With(mw.RequireAction(domain.ActionViewAllTickets)).Get("/", h.HandleListTickets)
	r.With(mw.RequireAction(domain.ActionCreateTicket)).Post("/", h.HandleCreateTicket)
	r.With(mw.RequireAction(domain.ActionViewOwnTickets)).Get("/my", h.HandleListMyTickets)
	r.With(mw.RequireAction(domain.ActionViewAssignedTickets)).Get("/assigned", h.HandleListAssignedTickets)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.With(mw.RequireAction(domain.ActionAssignTicket)).Patch("/assign", h.HandleAssignTicket)
		r.With(mw.RequireAction(domain.ActionResolveTicket)).Post("/complete", h.HandleCompleteTicket)
		r.With(mw.RequireAction(domain.ActionResolveTicket)).Post("/reject", h.HandleRejectTicket)
	})
}

// --- Request/Response DTOs ---

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)

	v.Required("description", r.Description).
		MaxLength("description", r.Description, domain.MaxDescriptionLength)

	v.Required("priority", r.Priority).
		OneOf("priority", r.Priority, []string{"low", "medium", "high"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignTicketRequest defines the expected JSON body for assigning a ticket
type AssignTicketRequest struct {
	ExecutorID string `json:"executorId"`
}

// Validate validates the assign ticket request
func (r *AssignTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("executorId", r.ExecutorID).
		UUID("executorId", r.ExecutorID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"statusLabel"`
	Priority      string  `json:"priority"`
	PriorityLabel string  `json:"priorityLabel"`
	CreatedBy     string  `json:"createdBy"`
	AssignedTo    *string `json:"assignedTo"`
	AssignedBy    *string `json:"assignedBy"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	CompletedAt   *string `json:"completedAt"`
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	var assignedTo *string
	if ticket.AssignedTo != nil {
		value := ticket.AssignedTo.String()
		assignedTo = &value
	}

	var assignedBy *string
	if ticket.AssignedBy != nil {
		value := ticket.AssignedBy.String()
		assignedBy = &value
	}

	var completedAt *string
	if ticket.CompletedAt != nil {
		value := ticket.CompletedAt.Format(time.RFC3339)
		completedAt = &value
	}

	return TicketDTO{
		ID:            ticket.ID.String(),
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        string(ticket.Status),
		StatusLabel:   ticket.Status.Label(),
		Priority:      string(ticket.Priority),
		PriorityLabel: ticket.Priority.Label(),
		CreatedBy:     ticket.CreatedBy.String(),
		AssignedTo:    assignedTo,
		AssignedBy:    assignedBy,
		CreatedAt:     ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     ticket.UpdatedAt.Format(time.RFC3339),
		CompletedAt:   completedAt,
	}
}

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

// --- Handlers ---

// HandleListTickets handles GET /tickets (operators see every ticket)
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	filter := h.parseFilter(r)

	tickets, err := h.queryService.AllTickets(r.Context(), filter)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleListMyTickets handles GET /tickets/my (applicants see their own tickets)
func (h *TicketHandler) HandleListMyTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	filter := h.parseFilter(r)

	tickets, err := h.queryService.TicketsCreatedBy(r.Context(), claims.UserID, filter)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleListAssignedTickets handles GET /tickets/assigned (executors see their queue)
func (h *TicketHandler) HandleListAssignedTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	filter := h.parseFilter(r)

	tickets, err := h.queryService.TicketsAssignedTo(r.Context(), claims.UserID, filter)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateTicketParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
		CreatedBy:   claims.UserID,
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleGetTicket handles GET /tickets/{ticketID}.
// Operators can view any ticket; applicants only their own; executors only
// tickets assigned to them.
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.queryService.TicketByID(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.canViewTicket(claims, ticket) {
		// Hide the ticket's existence from callers outside its scope
		h.errorHandler.Handle(w, r, apperrors.ErrTicketNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleAssignTicket handles PATCH /tickets/{ticketID}/assign
func (h *TicketHandler) HandleAssignTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	executorID, err := uuid.Parse(req.ExecutorID)
	if err != nil {
		// Unreachable after UUID validation above
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.AssignTicketParams{
		TicketID:   ticketID,
		ExecutorID: executorID,
		AssignedBy: claims.UserID,
	}

	ticket, err := h.ticketService.AssignTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket assigned",
		"ticket_id", ticketID,
		"executor_id", executorID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleCompleteTicket handles POST /tickets/{ticketID}/complete
func (h *TicketHandler) HandleCompleteTicket(w http.ResponseWriter, r *http.Request) {
	h.handleResolveTicket(w, r, "ticket completed", h.ticketService.CompleteTicket)
}

// HandleRejectTicket handles POST /tickets/{ticketID}/reject
func (h *TicketHandler) HandleRejectTicket(w http.ResponseWriter, r *http.Request) {
	h.handleResolveTicket(w, r, "ticket rejected", h.ticketService.RejectTicket)
}

func (h *TicketHandler) handleResolveTicket(
	w http.ResponseWriter,
	r *http.Request,
	logMsg string,
	resolve func(ctx context.Context, params ports.ResolveTicketParams) (*domain.Ticket, error),
) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.ResolveTicketParams{
		TicketID:   ticketID,
		ExecutorID: claims.UserID,
	}

	ticket, err := resolve(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info(logMsg,
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// --- Helper methods ---

func (h *TicketHandler) canViewTicket(claims *auth.Claims, ticket *domain.Ticket) bool {
	switch claims.Role {
	case domain.RoleOperator:
		return true
	case domain.RoleApplicant:
		return ticket.IsCreatedBy(claims.UserID)
	case domain.RoleExecutor:
		return ticket.IsAssignedTo(claims.UserID)
	}
	return false
}

func (h *TicketHandler) parseFilter(r *http.Request) domain.TicketFilter {
	status := validation.ParseStringQueryParam(r, "status")
	priority := validation.ParseStringQueryParam(r, "priority")
	return domain.ParseTicketFilter(status, priority)
}

// getClaims extracts and validates user claims from the request context
func (h *TicketHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parseTicketID extracts and validates the ticket ID from the URL
func (h *TicketHandler) parseTicketID(r *http.Request) (uuid.UUID, error) {
	ticketID, err := uuid.Parse(chi.URLParam(r, "ticketID"))
	if err != nil {
		v := validation.NewValidator()
		v.Custom("ticketID", false, "Invalid ticket ID")
		return uuid.Nil, v.Errors()
	}
	return ticketID, nil
}
