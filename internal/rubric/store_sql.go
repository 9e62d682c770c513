package rubric

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (s *SQLStore) PutRubric(ctx context.Context, r Rubric) (Rubric, error) {
	if r.ID == "" {
		r.ID = NewID()
		r.CreatedAt = time.Now().Unix()
	}
	r.UpdatedAt = time.Now().Unix()

	glj, err := json.Marshal(r.Header.GradeLevels)
	if err != nil {
		return Rubric{}, err
	}
	lj, err := json.Marshal(r.Lines)
	if err != nil {
		return Rubric{}, err
	}
	gj, err := json.Marshal(r.StudentGrades)
	if err != nil {
		return Rubric{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO rubrics (id,teacher_email,teacher_name,title,grade_levels_json,lines_json,grades_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET teacher_email=EXCLUDED.teacher_email, teacher_name=EXCLUDED.teacher_name,
		  title=EXCLUDED.title, grade_levels_json=EXCLUDED.grade_levels_json, lines_json=EXCLUDED.lines_json,
		  grades_json=EXCLUDED.grades_json, updated_at=EXCLUDED.updated_at`,
		r.ID, r.TeacherEmail, r.TeacherName, r.Header.Title, string(glj), string(lj), string(gj), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return Rubric{}, err
	}
	return r, nil
}

func (s *SQLStore) GetRubric(ctx context.Context, id string) (Rubric, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,teacher_email,teacher_name,title,grade_levels_json,lines_json,grades_json,created_at,updated_at
		FROM rubrics WHERE id=$1`, id)
	var r Rubric
	var glj, lj, gj string
	if err := row.Scan(&r.ID, &r.TeacherEmail, &r.TeacherName, &r.Header.Title, &glj, &lj, &gj, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rubric{}, ErrNotFound
		}
		return Rubric{}, err
	}
	if err := json.Unmarshal([]byte(glj), &r.Header.GradeLevels); err != nil {
		return Rubric{}, err
	}
	if err := json.Unmarshal([]byte(lj), &r.Lines); err != nil {
		return Rubric{}, err
	}
	if err := json.Unmarshal([]byte(gj), &r.StudentGrades); err != nil {
		return Rubric{}, err
	}
	return r, nil
}

func (s *SQLStore) ListRubrics(ctx context.Context, opts ListOpts) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,grades_json FROM rubrics
		WHERE teacher_email=$1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		opts.TeacherEmail, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var gj string
		if err := rows.Scan(&sm.ID, &sm.Title, &gj); err != nil {
			return nil, err
		}
		var grades []StudentGrade
		if err := json.Unmarshal([]byte(gj), &grades); err == nil {
			sm.AssignedStudents = len(grades)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteRubric(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rubrics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
