package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository persists the user directory. Implementations must return
// ErrNotFound for unknown ids/emails and ErrEmailExists on duplicate inserts.
type Repository interface {
	Create(ctx context.Context, u User) error
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	SetClass(ctx context.Context, studentID, classID string) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}

// Service implements user directory operations. Authorization is the
// caller's concern; the service only validates inputs.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a user with an explicit role (admin flow).
func (s *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.Email = strings.TrimSpace(strings.ToLower(nu.Email))
	if nu.Email == "" || nu.Name == "" {
		return User{}, errors.New("email and name required")
	}
	if !nu.Role.Valid() {
		return User{}, ErrBadRole
	}
	u := User{
		ID:             uuid.NewString(),
		Email:          nu.Email,
		Name:           nu.Name,
		Picture:        nu.Picture,
		Role:           nu.Role,
		StudentNo:      nu.StudentNo,
		ClassID:        nu.ClassID,
		ParentChildIDs: nu.ParentChildIDs,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// EnsureByEmail returns the user for an OAuth identity, creating one with the
// default student role on first login.
func (s *Service) EnsureByEmail(ctx context.Context, email, name, picture string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return s.Create(ctx, NewUser{Email: email, Name: name, Picture: picture, Role: RoleStudent})
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateRole is a flat overwrite; any role may become any other role.
func (s *Service) UpdateRole(ctx context.Context, id string, role Role) error {
	if !role.Valid() {
		return ErrBadRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}
