package class

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepository persists classes in Postgres.
type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, c Class) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO classes (id, name, division, stream, grade, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.Division, c.Stream, c.Grade, c.CreatedAt)
	return err
}

func (r *PGRepository) List(ctx context.Context) ([]Class, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, division, stream, grade, created_at
		FROM classes
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []Class
	byID := make(map[string]int)
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Division, &c.Stream, &c.Grade, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.StudentIDs = []string{}
		byID[c.ID] = len(classes)
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := r.db.QueryContext(ctx, `SELECT class_id, student_id FROM class_students`)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for links.Next() {
		var classID, studentID string
		if err := links.Scan(&classID, &studentID); err != nil {
			return nil, err
		}
		if i, ok := byID[classID]; ok {
			classes[i].StudentIDs = append(classes[i].StudentIDs, studentID)
		}
	}
	return classes, links.Err()
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Class, error) {
	var c Class
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, division, stream, grade, created_at
		FROM classes WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Division, &c.Stream, &c.Grade, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Class{}, ErrNotFound
		}
		return Class{}, err
	}

	c.StudentIDs = []string{}
	rows, err := r.db.QueryContext(ctx, `SELECT student_id FROM class_students WHERE class_id = $1`, id)
	if err != nil {
		return Class{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			return Class{}, err
		}
		c.StudentIDs = append(c.StudentIDs, studentID)
	}
	return c, rows.Err()
}

// AddStudent is idempotent; re-adding an enrolled student is a no-op.
func (r *PGRepository) AddStudent(ctx context.Context, classID, studentID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO class_students (class_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (class_id, student_id) DO NOTHING
	`, classID, studentID)
	return err
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n)
	return n, err
}
