package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return vErr
}

// A grossly invalid registration payload must fail with per-field
// messages keyed by JSON name.
func TestValidate_CreateUserRequest(t *testing.T) {
	v := New()

	vErr := requireValidationError(t, v.Validate(&dto.CreateUserRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "x",
	}))

	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 6 characters long", vErr.Errors["password"])

	assert.NoError(t, v.Validate(&dto.CreateUserRequest{
		Name:     "Linh",
		Email:    "linh@snapdi.vn",
		Password: "super_password123",
	}))
}

func TestValidate_LoginRule(t *testing.T) {
	v := New()

	vErr := requireValidationError(t, v.Validate(&dto.LoginRequest{
		Login:    "notanemail",
		Password: "super_password123",
	}))
	assert.Equal(t, "Must be an email address or a phone number", vErr.Errors["login"])

	assert.NoError(t, v.Validate(&dto.LoginRequest{
		Login:    "linh@snapdi.vn",
		Password: "super_password123",
	}))
	assert.NoError(t, v.Validate(&dto.LoginRequest{
		Login:    "+84 912 345 678",
		Password: "super_password123",
	}))
}

func TestValidate_RoleRule(t *testing.T) {
	v := New()

	type roleBody struct {
		Role string `json:"role" validate:"omitempty,is-role"`
	}

	assert.NoError(t, v.Validate(&roleBody{Role: "Photographer"}))
	assert.NoError(t, v.Validate(&roleBody{}))

	vErr := requireValidationError(t, v.Validate(&roleBody{Role: "Superuser"}))
	assert.Equal(t, "Must be a known role name", vErr.Errors["role"])
}
