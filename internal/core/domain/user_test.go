package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid password", "Sup3rSecret", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sup3rsecret", false},
		{"no lowercase", "SUP3RSECRET", false},
		{"no number", "SuperSecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePassword(tt.password)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(UserRegistrationParams{
			Email:    "ivan@example.com",
			FullName: "Ivan Petrov",
			Password: "Sup3rSecret",
			Role:     RoleApplicant,
		})

		require.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.Equal(t, RoleApplicant, user.Role)
		assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)
		assert.True(t, user.CheckPassword("Sup3rSecret"))
		assert.False(t, user.CheckPassword("WrongPass1"))
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		user, err := NewUser(UserRegistrationParams{
			Email:    "not-an-email",
			FullName: "",
			Password: "weak",
			Role:     "admin",
		})

		assert.Nil(t, user)
		var validationErrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.Errors, "email")
		assert.Contains(t, validationErrs.Errors, "fullName")
		assert.Contains(t, validationErrs.Errors, "password")
		assert.Contains(t, validationErrs.Errors, "role")
	})
}
