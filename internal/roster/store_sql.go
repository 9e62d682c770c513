package roster

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) UpsertStudent(ctx context.Context, st Student) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO students (email,name,student_id,grade_level,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name, student_id=EXCLUDED.student_id, grade_level=EXCLUDED.grade_level`,
		st.Email, st.Name, st.StudentID, st.GradeLevel, time.Now().Unix())
	return err
}

func (s *SQLStore) GetStudent(ctx context.Context, email string) (Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT email,name,student_id,grade_level,created_at FROM students WHERE email=$1`, email)
	var st Student
	if err := row.Scan(&st.Email, &st.Name, &st.StudentID, &st.GradeLevel, &st.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, ErrNotFound
		}
		return Student{}, err
	}
	return st, nil
}

func (s *SQLStore) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT email,name,student_id,grade_level,created_at FROM students ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Student{}
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.Email, &st.Name, &st.StudentID, &st.GradeLevel, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteStudent(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE email=$1`, email)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
