package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/hdesk/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

// ExecutorHandler exposes the executor directory operators pick assignees from.
type ExecutorHandler struct {
	queryService ports.TicketQueryService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewExecutorHandler creates a new executor handler
func NewExecutorHandler(
	queryService ports.TicketQueryService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ExecutorHandler {
	return &ExecutorHandler{
		queryService: queryService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "executor"),
	}
}

// RegisterRoutes sets up the routing for executor endpoints.
func (h *ExecutorHandler) RegisterRoutes(r chi.Router) {
	r.With(mw.RequireAction(domain.ActionListExecutors)).Get("/", h.HandleListExecutors)
}

// ExecutorDTO defines the JSON response for executors.
type ExecutorDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	CreatedAt string `json:"createdAt"`
}

func toExecutorDTOs(users []*domain.User) []ExecutorDTO {
	response := make([]ExecutorDTO, 0, len(users))
	for _, user := range users {
		response = append(response, ExecutorDTO{
			ID:        user.ID.String(),
			Email:     user.Email,
			FullName:  user.FullName,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		})
	}
	return response
}

// HandleListExecutors handles GET /executors (active executors only)
func (h *ExecutorHandler) HandleListExecutors(w http.ResponseWriter, r *http.Request) {
	executors, err := h.queryService.ActiveExecutors(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toExecutorDTOs(executors))
}
