package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

func TestRegisterHashesPasswordAndAssignsUserRole(t *testing.T) {
	w := newWorld()

	user, err := w.userService().Register(context.Background(), "new@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
	assert.True(t, user.Active)
	assert.Equal(t, []string{models.RoleUser}, user.RoleList())
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	w := newWorld()
	w.seedUser("taken@example.com")

	_, err := w.userService().Register(context.Background(), "taken@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	w := newWorld()
	svc := w.userService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "secret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "user@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)

	_, err = svc.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestLoginRejectsBannedAccount(t *testing.T) {
	w := newWorld()
	svc := w.userService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "user@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, svc.BanUser(ctx, user.ID))

	_, err = svc.Login(ctx, "user@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestBanUserTogglesBothWays(t *testing.T) {
	w := newWorld()
	user := w.seedUser("user@example.com")
	svc := w.userService()
	ctx := context.Background()

	require.NoError(t, svc.BanUser(ctx, user.ID))
	assert.False(t, user.Active)

	// Banning an already banned account reactivates it.
	require.NoError(t, svc.BanUser(ctx, user.ID))
	assert.True(t, user.Active)
}

func TestBanUserUnknown(t *testing.T) {
	w := newWorld()
	err := w.userService().BanUser(context.Background(), 999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestChangeRolesKeepsValidSubset(t *testing.T) {
	w := newWorld()
	user := w.seedUser("user@example.com")
	svc := w.userService()

	err := svc.ChangeRoles(context.Background(), user.ID, []string{"admin", "superhero", "user", "admin"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleUser}, user.RoleList())
}
