// Package stats derives role-scoped dashboard counters on demand. Nothing is
// cached or maintained incrementally; every call scans current data.
package stats

import (
	"context"
	"math"

	"schoolattend/internal/user"
)

// Directory is the slice of the user directory the aggregator needs.
type Directory interface {
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role user.Role) (int, error)
}

// ClassRegistry counts classes.
type ClassRegistry interface {
	Count(ctx context.Context) (int, error)
}

// Ledger counts attendance records per student.
type Ledger interface {
	CountForStudent(ctx context.Context, studentID string) (total, present int, err error)
}

type AdminStats struct {
	TotalUsers    int `json:"total_users"`
	TotalClasses  int `json:"total_classes"`
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
}

// TeacherStats covers all classes: there is no teacher-to-class ownership in
// the data model, so every teacher sees school-wide counts.
type TeacherStats struct {
	TotalClasses  int `json:"total_classes"`
	TotalStudents int `json:"total_students"`
}

type StudentStats struct {
	TotalRecords         int `json:"total_attendance_records"`
	PresentCount         int `json:"present_count"`
	AttendancePercentage int `json:"attendance_percentage"`
}

type ParentStats struct {
	ChildrenCount        int `json:"children_count"`
	TotalRecords         int `json:"total_attendance_records"`
	PresentCount         int `json:"present_count"`
	AttendancePercentage int `json:"attendance_percentage"`
}

type Service struct {
	users   Directory
	classes ClassRegistry
	ledger  Ledger
}

func NewService(users Directory, classes ClassRegistry, ledger Ledger) *Service {
	return &Service{users: users, classes: classes, ledger: ledger}
}

// ForUser returns the stats object matching the user's role.
func (s *Service) ForUser(ctx context.Context, u user.User) (any, error) {
	switch u.Role {
	case user.RoleAdmin:
		return s.admin(ctx)
	case user.RoleTeacher:
		return s.teacher(ctx)
	case user.RoleStudent:
		return s.student(ctx, u.ID)
	case user.RoleParent:
		return s.parent(ctx, u.ParentChildIDs)
	}
	return nil, user.ErrBadRole
}

func (s *Service) admin(ctx context.Context) (AdminStats, error) {
	var st AdminStats
	var err error
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return st, err
	}
	if st.TotalClasses, err = s.classes.Count(ctx); err != nil {
		return st, err
	}
	if st.TotalStudents, err = s.users.CountByRole(ctx, user.RoleStudent); err != nil {
		return st, err
	}
	st.TotalTeachers, err = s.users.CountByRole(ctx, user.RoleTeacher)
	return st, err
}

func (s *Service) teacher(ctx context.Context) (TeacherStats, error) {
	var st TeacherStats
	var err error
	if st.TotalClasses, err = s.classes.Count(ctx); err != nil {
		return st, err
	}
	st.TotalStudents, err = s.users.CountByRole(ctx, user.RoleStudent)
	return st, err
}

func (s *Service) student(ctx context.Context, studentID string) (StudentStats, error) {
	total, present, err := s.ledger.CountForStudent(ctx, studentID)
	if err != nil {
		return StudentStats{}, err
	}
	return StudentStats{
		TotalRecords:         total,
		PresentCount:         present,
		AttendancePercentage: percentage(present, total),
	}, nil
}

func (s *Service) parent(ctx context.Context, childIDs []string) (ParentStats, error) {
	st := ParentStats{ChildrenCount: len(childIDs)}
	for _, childID := range childIDs {
		total, present, err := s.ledger.CountForStudent(ctx, childID)
		if err != nil {
			return ParentStats{}, err
		}
		st.TotalRecords += total
		st.PresentCount += present
	}
	st.AttendancePercentage = percentage(st.PresentCount, st.TotalRecords)
	return st, nil
}

// percentage rounds to the nearest integer and never divides by zero.
func percentage(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
