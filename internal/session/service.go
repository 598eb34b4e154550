// Package session maps opaque login tokens to user identities.
package session

import (
	"context"
	"errors"
	"time"

	"schoolattend/internal/metrics"
)

var ErrNotFound = errors.New("session not found or expired")

// Session ties an opaque token to a user until it expires.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists sessions keyed by token.
type Repository interface {
	Create(ctx context.Context, s Session) error
	GetByToken(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{repo: repo, ttl: ttl, now: time.Now}
}

// TTL is the configured session lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Start records a new session for the provider-issued token.
func (s *Service) Start(ctx context.Context, userID, token string) (Session, error) {
	if token == "" {
		return Session{}, errors.New("session token required")
	}
	now := s.now().UTC()
	sess := Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	metrics.SessionsCreated.Inc()
	return sess, nil
}

// Resolve returns the live session for a token. Expired sessions are deleted
// on sight and reported as not found.
func (s *Service) Resolve(ctx context.Context, token string) (Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}
	if sess.ExpiresAt.Before(s.now().UTC()) {
		_ = s.repo.Delete(ctx, token)
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// End destroys a session (logout). Unknown tokens are not an error.
func (s *Service) End(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, token)
}
