// Package inmem provides map-backed implementations of the repository
// interfaces. They back service and handler tests and double as a storage
// layer for local development without Postgres.
package inmem

import (
	"context"
	"sort"
	"sync"

	"schoolattend/internal/attendance"
	"schoolattend/internal/class"
	"schoolattend/internal/session"
	"schoolattend/internal/user"
)

// UserRepo implements user.Repository.
type UserRepo struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUserRepo() *UserRepo { return &UserRepo{} }

func (r *UserRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailExists
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Role = role
			return nil
		}
	}
	return user.ErrNotFound
}

func (r *UserRepo) SetClass(_ context.Context, studentID, classID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == studentID && r.users[i].Role == user.RoleStudent {
			r.users[i].ClassID = classID
			return nil
		}
	}
	return user.ErrNotFound
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *UserRepo) CountByRole(_ context.Context, role user.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ClassRepo implements class.Repository.
type ClassRepo struct {
	mu      sync.RWMutex
	classes []class.Class
}

func NewClassRepo() *ClassRepo { return &ClassRepo{} }

func (r *ClassRepo) Create(_ context.Context, c class.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = append(r.classes, c)
	return nil
}

func (r *ClassRepo) List(_ context.Context) ([]class.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]class.Class, len(r.classes))
	copy(out, r.classes)
	return out, nil
}

func (r *ClassRepo) GetByID(_ context.Context, id string) (class.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return class.Class{}, class.ErrNotFound
}

func (r *ClassRepo) AddStudent(_ context.Context, classID, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.classes {
		if r.classes[i].ID != classID {
			continue
		}
		for _, id := range r.classes[i].StudentIDs {
			if id == studentID {
				return nil
			}
		}
		r.classes[i].StudentIDs = append(r.classes[i].StudentIDs, studentID)
		return nil
	}
	return class.ErrNotFound
}

func (r *ClassRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes), nil
}

// AttendanceRepo implements attendance.Repository.
type AttendanceRepo struct {
	mu      sync.RWMutex
	records []attendance.Record
}

func NewAttendanceRepo() *AttendanceRepo { return &AttendanceRepo{} }

func (r *AttendanceRepo) Upsert(_ context.Context, rec attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ClassID == rec.ClassID &&
			r.records[i].StudentID == rec.StudentID &&
			r.records[i].Date == rec.Date {
			rec.ID = r.records[i].ID
			r.records[i] = rec
			return nil
		}
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *AttendanceRepo) ListByClassDate(_ context.Context, classID, date string) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.ClassID == classID && (date == "" || rec.Date == date) {
			out = append(out, rec)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *AttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *AttendanceRepo) CountForStudent(_ context.Context, studentID string) (total, present int, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.StudentID != studentID {
			continue
		}
		total++
		if rec.Status == attendance.StatusPresent {
			present++
		}
	}
	return total, present, nil
}

// ISO dates sort lexicographically.
func sortByDateDesc(recs []attendance.Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date > recs[j].Date })
}

// SessionRepo implements session.Repository.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]session.Session)}
}

func (r *SessionRepo) Create(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
	return nil
}

func (r *SessionRepo) GetByToken(_ context.Context, token string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
