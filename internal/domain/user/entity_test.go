//go:build unit

package user_test

import (
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T) *user.User {
	t.Helper()

	email, err := user.NewEmail("ana@example.com")
	require.NoError(t, err)

	u, err := user.NewUser("Ana", email, "$2a$10$hash", user.RoleCustomer)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("valid user starts active", func(t *testing.T) {
		u := newCustomer(t)
		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.Equal(t, "Ana", u.Name())
		assert.Equal(t, "ana@example.com", u.Email().Value())
		assert.Equal(t, user.RoleCustomer, u.Role())
		assert.True(t, u.IsActive())
		assert.Nil(t, u.LastLogin())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		email, _ := user.NewEmail("x@example.com")
		_, err := user.NewUser("  ", email, "hash", user.RoleCustomer)
		assert.ErrorIs(t, err, user.ErrEmptyName)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		email, _ := user.NewEmail("x@example.com")
		_, err := user.NewUser("Ana", email, "hash", user.Role("superuser"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestEmailValidation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid address", input: "valid@example.com"},
		{name: "trimmed whitespace", input: "  valid@example.com  "},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "someone@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPasswordValidation(t *testing.T) {
	_, err := user.NewPassword("short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("longenough")
	require.NoError(t, err)
	assert.Equal(t, "longenough", p.Value())
}

func TestRoleValidation(t *testing.T) {
	for _, s := range []string{"customer", "operator", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("guest")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestUserMutations(t *testing.T) {
	u := newCustomer(t)

	require.NoError(t, u.ChangeRole(user.RoleOperator))
	assert.Equal(t, user.RoleOperator, u.Role())
	assert.ErrorIs(t, u.ChangeRole(user.Role("root")), user.ErrInvalidRole)

	u.Deactivate()
	assert.False(t, u.IsActive())
	u.Activate()
	assert.True(t, u.IsActive())

	loginAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	u.RecordLogin(loginAt)
	require.NotNil(t, u.LastLogin())
	assert.Equal(t, loginAt, *u.LastLogin())
}
