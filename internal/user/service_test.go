package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolattend/internal/store/inmem"
	"schoolattend/internal/user"
)

func TestCreate_Validation(t *testing.T) {
	svc := user.NewService(inmem.NewUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, user.NewUser{Name: "No Email", Role: user.RoleStudent})
	assert.Error(t, err)

	_, err = svc.Create(ctx, user.NewUser{Email: "a@b.c", Name: "A", Role: "janitor"})
	assert.ErrorIs(t, err, user.ErrBadRole)

	u, err := svc.Create(ctx, user.NewUser{Email: "  A@B.C ", Name: "A", Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.NotEmpty(t, u.ID)

	_, err = svc.Create(ctx, user.NewUser{Email: "a@b.c", Name: "Dup", Role: user.RoleStudent})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestEnsureByEmail(t *testing.T) {
	svc := user.NewService(inmem.NewUserRepo())
	ctx := context.Background()

	// First login provisions a student.
	u, err := svc.EnsureByEmail(ctx, "kid@school.test", "Kid", "http://pic")
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, u.Role)
	assert.Equal(t, "http://pic", u.Picture)

	// Later logins return the same user even after a role change.
	require.NoError(t, svc.UpdateRole(ctx, u.ID, user.RoleAdmin))
	again, err := svc.EnsureByEmail(ctx, "kid@school.test", "Kid", "")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, user.RoleAdmin, again.Role)
}

func TestUpdateRole_FlatOverwrite(t *testing.T) {
	svc := user.NewService(inmem.NewUserRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, user.NewUser{Email: "p@school.test", Name: "P", Role: user.RoleParent})
	require.NoError(t, err)

	// Any role may become any other role; no transition table.
	for _, r := range []user.Role{user.RoleAdmin, user.RoleStudent, user.RoleTeacher, user.RoleParent} {
		require.NoError(t, svc.UpdateRole(ctx, u.ID, r))
		got, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, r, got.Role)
	}

	assert.ErrorIs(t, svc.UpdateRole(ctx, u.ID, "janitor"), user.ErrBadRole)
	assert.ErrorIs(t, svc.UpdateRole(ctx, "missing", user.RoleAdmin), user.ErrNotFound)
}
