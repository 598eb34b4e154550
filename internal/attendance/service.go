package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schoolattend/internal/metrics"
)

// Status is the per-day marking for a student.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
	StatusMedical Status = "medical"
)

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused, StatusMedical:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used throughout the ledger.
const DateLayout = "2006-01-02"

var (
	ErrBadStatus  = errors.New("unknown attendance status")
	ErrBadDate    = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate = errors.New("date must not be in the future")
)

// Record is one student's marking for one class on one date. At most one
// record exists per (class, student, date); re-submitting overwrites it.
type Record struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	MarkedBy  string    `json:"marked_by,omitempty"`
	MarkedAt  time.Time `json:"marked_at"`
}

// Entry is one student's line in a bulk submission.
type Entry struct {
	StudentID string
	Status    Status
	Notes     string
}

// Repository persists attendance records. Upsert must be atomic per
// (class, student, date) key with last-write-wins semantics.
type Repository interface {
	Upsert(ctx context.Context, rec Record) error
	ListByClassDate(ctx context.Context, classID, date string) ([]Record, error)
	ListByStudent(ctx context.Context, studentID string) ([]Record, error)
	CountForStudent(ctx context.Context, studentID string) (total, present int, err error)
}

// Service validates and records attendance submissions. Authorization is the
// caller's concern.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit upserts one record per entry for (classID, date). All entries are
// validated before the first write. Each upsert is atomic on its own; a
// failure partway through leaves earlier writes in place and reports how many
// records landed.
func (s *Service) Submit(ctx context.Context, classID, date string, entries []Entry, markedBy string) (int, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, ErrBadDate
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if day.After(today) {
		return 0, ErrFutureDate
	}
	for _, e := range entries {
		if e.StudentID == "" {
			return 0, errors.New("student_id required")
		}
		if !e.Status.Valid() {
			return 0, fmt.Errorf("%w: %q", ErrBadStatus, e.Status)
		}
	}

	written := 0
	for _, e := range entries {
		rec := Record{
			ClassID:   classID,
			StudentID: e.StudentID,
			Date:      date,
			Status:    e.Status,
			Notes:     e.Notes,
			MarkedBy:  markedBy,
			MarkedAt:  s.now().UTC(),
		}
		if err := s.repo.Upsert(ctx, rec); err != nil {
			return written, fmt.Errorf("upsert student %s: %w", e.StudentID, err)
		}
		written++
		metrics.AttendanceWrites.Inc()
	}
	return written, nil
}

// ListByClassDate returns the records for a class, optionally narrowed to one
// date. A student without a record is unmarked, not absent.
func (s *Service) ListByClassDate(ctx context.Context, classID, date string) ([]Record, error) {
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, ErrBadDate
		}
	}
	return s.repo.ListByClassDate(ctx, classID, date)
}

// ListByStudent returns a student's full history, most recent date first.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Record, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// CountForStudent returns total and present record counts for one student.
func (s *Service) CountForStudent(ctx context.Context, studentID string) (total, present int, err error) {
	return s.repo.CountForStudent(ctx, studentID)
}
