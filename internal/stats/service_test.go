package stats_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolattend/internal/attendance"
	"schoolattend/internal/class"
	"schoolattend/internal/stats"
	"schoolattend/internal/store/inmem"
	"schoolattend/internal/user"
)

type fixture struct {
	users      *inmem.UserRepo
	classes    *inmem.ClassRepo
	attendance *inmem.AttendanceRepo
	svc        *stats.Service
}

func newFixture() *fixture {
	users := inmem.NewUserRepo()
	classes := inmem.NewClassRepo()
	att := inmem.NewAttendanceRepo()
	return &fixture{
		users:      users,
		classes:    classes,
		attendance: att,
		svc:        stats.NewService(users, classes, att),
	}
}

func (f *fixture) addUser(t *testing.T, role user.Role, children ...string) user.User {
	t.Helper()
	u := user.User{
		ID:             uuid.NewString(),
		Email:          uuid.NewString() + "@school.test",
		Name:           "user",
		Role:           role,
		ParentChildIDs: children,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) mark(t *testing.T, studentID, date string, status attendance.Status) {
	t.Helper()
	err := f.attendance.Upsert(context.Background(), attendance.Record{
		ID: uuid.NewString(), ClassID: "c1", StudentID: studentID, Date: date, Status: status,
	})
	require.NoError(t, err)
}

func TestAdminStats(t *testing.T) {
	f := newFixture()
	f.addUser(t, user.RoleAdmin)
	f.addUser(t, user.RoleTeacher)
	f.addUser(t, user.RoleStudent)
	f.addUser(t, user.RoleStudent)
	require.NoError(t, f.classes.Create(context.Background(), class.Class{ID: "c1"}))

	st, err := f.svc.ForUser(context.Background(), user.User{Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, stats.AdminStats{
		TotalUsers:    4,
		TotalClasses:  1,
		TotalStudents: 2,
		TotalTeachers: 1,
	}, st)
}

func TestTeacherStats_SeesAllClasses(t *testing.T) {
	f := newFixture()
	f.addUser(t, user.RoleStudent)
	require.NoError(t, f.classes.Create(context.Background(), class.Class{ID: "c1"}))
	require.NoError(t, f.classes.Create(context.Background(), class.Class{ID: "c2"}))

	st, err := f.svc.ForUser(context.Background(), user.User{Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, stats.TeacherStats{TotalClasses: 2, TotalStudents: 1}, st)
}

func TestStudentStats_Percentage(t *testing.T) {
	f := newFixture()
	s := f.addUser(t, user.RoleStudent)
	f.mark(t, s.ID, "2024-01-15", attendance.StatusPresent)
	f.mark(t, s.ID, "2024-01-16", attendance.StatusPresent)
	f.mark(t, s.ID, "2024-01-17", attendance.StatusAbsent)

	st, err := f.svc.ForUser(context.Background(), s)
	require.NoError(t, err)
	// 2/3 rounds to 67.
	assert.Equal(t, stats.StudentStats{
		TotalRecords:         3,
		PresentCount:         2,
		AttendancePercentage: 67,
	}, st)
}

func TestStudentStats_NoRecordsIsZeroNotError(t *testing.T) {
	f := newFixture()
	s := f.addUser(t, user.RoleStudent)

	st, err := f.svc.ForUser(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, stats.StudentStats{}, st)
}

func TestParentStats_AggregatesChildren(t *testing.T) {
	f := newFixture()
	s1 := f.addUser(t, user.RoleStudent)
	s2 := f.addUser(t, user.RoleStudent)
	p := f.addUser(t, user.RoleParent, s1.ID, s2.ID)

	// s1: 9 present out of 10; s2: 4 present out of 5.
	for day := 1; day <= 10; day++ {
		status := attendance.StatusPresent
		if day == 10 {
			status = attendance.StatusAbsent
		}
		f.mark(t, s1.ID, date(day), status)
	}
	for day := 1; day <= 5; day++ {
		status := attendance.StatusPresent
		if day == 5 {
			status = attendance.StatusLate
		}
		f.mark(t, s2.ID, date(day), status)
	}

	st, err := f.svc.ForUser(context.Background(), p)
	require.NoError(t, err)
	// 13/15 rounds to 87.
	assert.Equal(t, stats.ParentStats{
		ChildrenCount:        2,
		TotalRecords:         15,
		PresentCount:         13,
		AttendancePercentage: 87,
	}, st)
}

func TestParentStats_NoChildren(t *testing.T) {
	f := newFixture()
	p := f.addUser(t, user.RoleParent)

	st, err := f.svc.ForUser(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, stats.ParentStats{}, st)
}

func date(day int) string {
	return fmt.Sprintf("2024-01-%02d", day)
}
