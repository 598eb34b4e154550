package class_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolattend/internal/class"
	"schoolattend/internal/store/inmem"
	"schoolattend/internal/user"
)

func setup(t *testing.T) (*class.Service, *user.Service) {
	t.Helper()
	userRepo := inmem.NewUserRepo()
	users := user.NewService(userRepo)
	classes := class.NewService(inmem.NewClassRepo(), userRepo)
	return classes, users
}

func TestCreate_RequiresFields(t *testing.T) {
	classes, _ := setup(t)

	_, err := classes.Create(context.Background(), class.NewClass{Name: "12-A"})
	assert.Error(t, err)

	c, err := classes.Create(context.Background(), class.NewClass{Name: "12-A", Division: "A", Stream: "Commerce"})
	require.NoError(t, err)
	assert.Equal(t, "12", c.Grade)
	assert.NotEmpty(t, c.ID)
	assert.Empty(t, c.StudentIDs)
}

func TestAssignStudent_IdempotentRosterAdd(t *testing.T) {
	classes, users := setup(t)
	ctx := context.Background()

	c, err := classes.Create(ctx, class.NewClass{Name: "12-A", Division: "A", Stream: "Commerce", Grade: "12"})
	require.NoError(t, err)
	s, err := users.Create(ctx, user.NewUser{Email: "s@school.test", Name: "S", Role: user.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, classes.AssignStudent(ctx, c.ID, s.ID))
	require.NoError(t, classes.AssignStudent(ctx, c.ID, s.ID))

	got, err := classes.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID}, got.StudentIDs)

	su, err := users.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, su.ClassID)
}

func TestAssignStudent_ReassignmentOverwritesClassID(t *testing.T) {
	classes, users := setup(t)
	ctx := context.Background()

	c1, err := classes.Create(ctx, class.NewClass{Name: "12-A", Division: "A", Stream: "Commerce"})
	require.NoError(t, err)
	c2, err := classes.Create(ctx, class.NewClass{Name: "12-B", Division: "B", Stream: "Science"})
	require.NoError(t, err)
	s, err := users.Create(ctx, user.NewUser{Email: "s@school.test", Name: "S", Role: user.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, classes.AssignStudent(ctx, c1.ID, s.ID))
	require.NoError(t, classes.AssignStudent(ctx, c2.ID, s.ID))

	su, err := users.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, c2.ID, su.ClassID)

	// The old roster is deliberately left alone; see the service contract.
	old, err := classes.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Contains(t, old.StudentIDs, s.ID)
}

func TestAssignStudent_Validation(t *testing.T) {
	classes, users := setup(t)
	ctx := context.Background()

	c, err := classes.Create(ctx, class.NewClass{Name: "12-A", Division: "A", Stream: "Commerce"})
	require.NoError(t, err)
	teacher, err := users.Create(ctx, user.NewUser{Email: "t@school.test", Name: "T", Role: user.RoleTeacher})
	require.NoError(t, err)

	assert.ErrorIs(t, classes.AssignStudent(ctx, "missing", teacher.ID), class.ErrNotFound)
	assert.ErrorIs(t, classes.AssignStudent(ctx, c.ID, "missing"), user.ErrNotFound)
	assert.ErrorIs(t, classes.AssignStudent(ctx, c.ID, teacher.ID), user.ErrNotStudent)
}
