package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hdesk/helpdesk-backend/internal/auth"
	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	"github.com/hdesk/helpdesk-backend/internal/core/mocks"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

func newExecutorRouter(claims *auth.Claims, querySvc ports.TicketQueryService) stdhttp.Handler {
	logger := discardLogger()
	handler := NewExecutorHandler(querySvc, NewErrorHandler(logger), logger)

	r := chi.NewRouter()
	r.Use(withClaims(claims))
	r.Route("/executors", handler.RegisterRoutes)
	return r
}

func TestListExecutors(t *testing.T) {
	t.Run("operator lists active executors", func(t *testing.T) {
		querySvc := mocks.NewMockTicketQueryService()
		router := newExecutorRouter(claimsFor(domain.RoleOperator), querySvc)

		querySvc.On("ActiveExecutors", mock.Anything).Return([]*domain.User{
			{
				ID:        uuid.New(),
				Email:     "erika@example.com",
				FullName:  "Erika Executor",
				Role:      domain.RoleExecutor,
				IsActive:  true,
				CreatedAt: time.Now().UTC(),
			},
		}, nil)

		rec := doJSON(t, router, stdhttp.MethodGet, "/executors", nil)

		require.Equal(t, stdhttp.StatusOK, rec.Code)

		var resp ListResponse[ExecutorDTO]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Erika Executor", resp.Data[0].FullName)
		querySvc.AssertExpectations(t)
	})

	t.Run("applicant is rejected", func(t *testing.T) {
		querySvc := mocks.NewMockTicketQueryService()
		router := newExecutorRouter(claimsFor(domain.RoleApplicant), querySvc)

		rec := doJSON(t, router, stdhttp.MethodGet, "/executors", nil)

		require.Equal(t, stdhttp.StatusForbidden, rec.Code)
		assert.Equal(t, "Only operators can list executors.", decodeError(t, rec).Error)
		querySvc.AssertNotCalled(t, "ActiveExecutors")
	})

	t.Run("executor is rejected", func(t *testing.T) {
		router := newExecutorRouter(claimsFor(domain.RoleExecutor), mocks.NewMockTicketQueryService())

		rec := doJSON(t, router, stdhttp.MethodGet, "/executors", nil)

		assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	})
}
