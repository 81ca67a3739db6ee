package services

import (
	"testing"

	"langson-benefits/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(testCtx, &RegisterInput{
		FullName: "Nguyễn Văn A",
		Email:    "Citizen@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "citizen@example.com", user.Email) // normalized
	assert.Equal(t, string(domain.RoleCitizen), user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	logged, err := env.userService.Login(testCtx, "citizen@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = env.userService.Login(testCtx, "citizen@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.userService.Login(testCtx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userService.Register(testCtx, &RegisterInput{
		FullName: "A",
		Email:    "a@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = env.userService.Register(testCtx, &RegisterInput{
		FullName: "A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = env.userService.Register(testCtx, &RegisterInput{
		FullName: "B",
		Email:    "A@EXAMPLE.COM",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDisabledAccountCannotLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(testCtx, &RegisterInput{
		FullName: "A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = env.userService.UpdateUser(testCtx, user.ID, &UpdateUserInput{Status: domain.UserStatusInactive})
	require.NoError(t, err)

	_, err = env.userService.Login(testCtx, "a@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(testCtx, &RegisterInput{
		FullName: "A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	err = env.userService.ChangePassword(testCtx, user.ID, "wrong", "newsecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, env.userService.ChangePassword(testCtx, user.ID, "secret123", "newsecret1"))

	_, err = env.userService.Login(testCtx, "a@example.com", "newsecret1")
	assert.NoError(t, err)
}

func TestCreateUserWithRole(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.CreateUser(testCtx, &CreateUserInput{
		FullName: "Officer",
		Email:    "officer@langson.gov.vn",
		Password: "secret123",
		Role:     string(domain.RoleOfficer),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleOfficer), user.Role)

	_, err = env.userService.CreateUser(testCtx, &CreateUserInput{
		FullName: "X",
		Email:    "x@langson.gov.vn",
		Password: "secret123",
		Role:     "SUPERUSER",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)

	officers, err := env.userService.ListOfficers(testCtx)
	require.NoError(t, err)
	require.Len(t, officers, 1)
	assert.Equal(t, "officer@langson.gov.vn", officers[0].Email)
}
