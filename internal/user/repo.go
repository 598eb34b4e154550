package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepository persists users in Postgres.
type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, u User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, name, picture, role, student_no, class_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, '')::uuid, $8)
	`, u.ID, u.Email, u.Name, u.Picture, u.Role, u.StudentNo, u.ClassID, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailExists
		}
		return err
	}
	for _, childID := range u.ParentChildIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO parent_children (parent_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT (parent_id, student_id) DO NOTHING
		`, u.ID, childID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, picture, role, student_no, class_id, created_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	byID := make(map[string]int)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		byID[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := r.db.QueryContext(ctx, `SELECT parent_id, student_id FROM parent_children`)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for links.Next() {
		var parentID, studentID string
		if err := links.Scan(&parentID, &studentID); err != nil {
			return nil, err
		}
		if i, ok := byID[parentID]; ok {
			users[i].ParentChildIDs = append(users[i].ParentChildIDs, studentID)
		}
	}
	return users, links.Err()
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (User, error) {
	return r.getOne(ctx, `
		SELECT id, email, name, picture, role, student_no, class_id, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *PGRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, `
		SELECT id, email, name, picture, role, student_no, class_id, created_at
		FROM users WHERE email = $1
	`, email)
}

func (r *PGRepository) getOne(ctx context.Context, query, arg string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT student_id FROM parent_children WHERE parent_id = $1`, u.ID)
	if err != nil {
		return User{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var childID string
		if err := rows.Scan(&childID); err != nil {
			return User{}, err
		}
		u.ParentChildIDs = append(u.ParentChildIDs, childID)
	}
	return u, rows.Err()
}

func (r *PGRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetClass overwrites a student's single active class. Reassignment does not
// touch the previous class's roster; that gap is the registry's to close.
func (r *PGRepository) SetClass(ctx context.Context, studentID, classID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET class_id = $2 WHERE id = $1 AND role = 'student'
	`, studentID, classID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *PGRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var picture, studentNo, classID sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &picture, &u.Role, &studentNo, &classID, &u.CreatedAt); err != nil {
		return User{}, err
	}
	u.Picture = picture.String
	u.StudentNo = studentNo.String
	u.ClassID = classID.String
	return u, nil
}
