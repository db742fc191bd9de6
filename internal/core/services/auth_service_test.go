package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
	"github.com/hdesk/helpdesk-backend/internal/core/mocks"
)

func registrationParams() domain.UserRegistrationParams {
	return domain.UserRegistrationParams{
		Email:    "anna@example.com",
		FullName: "Anna Operator",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		params := registrationParams()
		userRepo.On("GetByEmail", ctx, params.Email).Return(nil, apperrors.ErrUserNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				created := args.Get(1).(*domain.User)
				assert.Equal(t, params.Email, created.Email)
				assert.Equal(t, domain.RoleOperator, created.Role)
				assert.True(t, created.IsActive)
			}).
			Return(&domain.User{Email: params.Email, Role: params.Role, IsActive: true}, nil)

		user, err := svc.Register(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, params.Email, user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("empty role defaults to applicant", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		params := registrationParams()
		params.Role = ""
		userRepo.On("GetByEmail", ctx, params.Email).Return(nil, apperrors.ErrUserNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				created := args.Get(1).(*domain.User)
				assert.Equal(t, domain.RoleApplicant, created.Role)
			}).
			Return(&domain.User{Role: domain.RoleApplicant}, nil)

		_, err := svc.Register(ctx, params)

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		params := registrationParams()
		userRepo.On("GetByEmail", ctx, params.Email).Return(&domain.User{Email: params.Email}, nil)

		_, err := svc.Register(ctx, params)

		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("weak password fails validation", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		params := registrationParams()
		params.Password = "weak"

		_, err := svc.Register(ctx, params)

		var validationErrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		userRepo.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	activeUser := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser(registrationParams())
		require.NoError(t, err)
		return user
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		user := activeUser(t)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		got, err := svc.Login(ctx, user.Email, "Sup3rSecret")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		user := activeUser(t)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, user.Email, "WrongPass1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "Sup3rSecret")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("inactive user cannot log in", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		user := activeUser(t)
		user.IsActive = false
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, user.Email, "Sup3rSecret")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo)

		_, err := svc.Login(ctx, "", "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		userRepo.AssertNotCalled(t, "GetByEmail")
	})
}
