package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ImportResult reports the outcome of one CSV roster import.
type ImportResult struct {
	Imported int `json:"imported"`
	Errors   int `json:"errors"`
}

// ImportCSV parses a roster CSV (columns: email, full_name, grade_level,
// optional student_id) and upserts one student document per valid row, keyed
// by email. Rows missing a required field are skipped and counted as errors;
// the import itself only fails on unreadable input or a store error.
func ImportCSV(ctx context.Context, store Store, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Ragged rows are skipped and counted below, not a terminal parse error.
	cr.FieldsPerRecord = -1
	hdr, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range []string{"email", "full_name", "grade_level"} {
		if _, ok := idx[k]; !ok {
			return ImportResult{}, errors.New("missing column: " + k)
		}
	}

	var res ImportResult
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		st := Student{
			Email:      field(rec, idx, "email"),
			Name:       field(rec, idx, "full_name"),
			GradeLevel: field(rec, idx, "grade_level"),
			StudentID:  field(rec, idx, "student_id"),
		}
		if st.StudentID == "" {
			st.StudentID = tempStudentID()
		}
		if err := validate.Struct(st); err != nil {
			res.Errors++
			continue
		}
		if err := store.UpsertStudent(ctx, st); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func tempStudentID() string {
	return fmt.Sprintf("temp-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:7])
}
