// Package class is the registry of classes and their student rosters.
package class

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"schoolattend/internal/user"
)

var ErrNotFound = errors.New("class not found")

// Class groups students under a grade/division/stream label.
type Class struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Division   string    `json:"division"`
	Stream     string    `json:"stream"`
	Grade      string    `json:"grade"`
	StudentIDs []string  `json:"student_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewClass carries the fields accepted on class creation.
type NewClass struct {
	Name     string
	Division string
	Stream   string
	Grade    string
}

// Repository persists classes. AddStudent must be an idempotent set-add.
type Repository interface {
	Create(ctx context.Context, c Class) error
	List(ctx context.Context) ([]Class, error)
	GetByID(ctx context.Context, id string) (Class, error)
	AddStudent(ctx context.Context, classID, studentID string) error
	Count(ctx context.Context) (int, error)
}

// StudentDirectory is the slice of the user directory the registry needs
// for roster assignment.
type StudentDirectory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	SetClass(ctx context.Context, studentID, classID string) error
}

type Service struct {
	repo     Repository
	students StudentDirectory
}

func NewService(repo Repository, students StudentDirectory) *Service {
	return &Service{repo: repo, students: students}
}

func (s *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	if nc.Name == "" || nc.Division == "" || nc.Stream == "" {
		return Class{}, errors.New("name, division and stream required")
	}
	if nc.Grade == "" {
		nc.Grade = "12"
	}
	c := Class{
		ID:         uuid.NewString(),
		Name:       nc.Name,
		Division:   nc.Division,
		Stream:     nc.Stream,
		Grade:      nc.Grade,
		StudentIDs: []string{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Class{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Class, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Class, error) {
	return s.repo.GetByID(ctx, id)
}

// AssignStudent adds a student to the roster and points the student's
// class_id at this class. The two writes are not atomic: the roster add can
// succeed while the class_id update fails, leaving the roster ahead of the
// directory until the assignment is retried. Reassigning a student overwrites
// class_id without removing them from the previous roster.
func (s *Service) AssignStudent(ctx context.Context, classID, studentID string) error {
	if _, err := s.repo.GetByID(ctx, classID); err != nil {
		return err
	}
	u, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if u.Role != user.RoleStudent {
		return user.ErrNotStudent
	}
	if err := s.repo.AddStudent(ctx, classID, studentID); err != nil {
		return err
	}
	return s.students.SetClass(ctx, studentID, classID)
}
