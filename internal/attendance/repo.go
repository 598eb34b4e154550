package attendance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// PGRepository persists attendance records in Postgres.
type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository {
	return &PGRepository{db: db}
}

// Upsert inserts or overwrites the unique record for (class, student, date).
// The ON CONFLICT update makes the write atomic and last-write-wins.
func (r *PGRepository) Upsert(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (id, class_id, student_id, date, status, notes, marked_by, marked_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, '')::uuid, $8)
		ON CONFLICT (class_id, student_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by,
			marked_at = EXCLUDED.marked_at
	`, rec.ID, rec.ClassID, rec.StudentID, rec.Date, rec.Status, rec.Notes, rec.MarkedBy, rec.MarkedAt)
	return err
}

func (r *PGRepository) ListByClassDate(ctx context.Context, classID, date string) ([]Record, error) {
	query := `
		SELECT id, class_id, student_id, to_char(date, 'YYYY-MM-DD'), status, notes, marked_by, marked_at
		FROM attendance_records
		WHERE class_id = $1`
	args := []any{classID}
	if date != "" {
		query += ` AND date = $2`
		args = append(args, date)
	}
	query += ` ORDER BY date DESC, student_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *PGRepository) ListByStudent(ctx context.Context, studentID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, class_id, student_id, to_char(date, 'YYYY-MM-DD'), status, notes, marked_by, marked_at
		FROM attendance_records
		WHERE student_id = $1
		ORDER BY date DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *PGRepository) CountForStudent(ctx context.Context, studentID string) (total, present int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'present')
		FROM attendance_records
		WHERE student_id = $1
	`, studentID).Scan(&total, &present)
	return total, present, err
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var res []Record
	for rows.Next() {
		var rec Record
		var notes, markedBy sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ClassID, &rec.StudentID, &rec.Date, &rec.Status, &notes, &markedBy, &rec.MarkedAt); err != nil {
			return nil, err
		}
		rec.Notes = notes.String
		rec.MarkedBy = markedBy.String
		res = append(res, rec)
	}
	return res, rows.Err()
}
