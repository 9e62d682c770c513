// Package sharelink builds and parses the read-only feedback URLs a teacher
// hands to a student. The student email is base64-encoded: a reversible text
// encoding against casual URL reading, not an access-control mechanism.
package sharelink

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var (
	ErrMissingRubricID   = errors.New("rubric id missing")
	ErrMissingStudent    = errors.New("student missing")
	ErrMissingTeacherUID = errors.New("teacherUid missing")
	ErrBadStudentParam   = errors.New("invalid student link")
)

// Params are the decoded query parameters of a feedback link. All three are
// required.
type Params struct {
	RubricID     string
	StudentEmail string
	TeacherUID   string
}

func EncodeStudentEmail(email string) string {
	return base64.StdEncoding.EncodeToString([]byte(email))
}

func DecodeStudentEmail(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", ErrBadStudentParam
	}
	return string(b), nil
}

// BuildURL assembles PUBLIC_URL + "/feedback?id=..&student=..&teacherUid=..".
func BuildURL(publicURL, rubricID, teacherUID, studentEmail string) string {
	q := url.Values{}
	q.Set("id", rubricID)
	q.Set("student", EncodeStudentEmail(studentEmail))
	q.Set("teacherUid", teacherUID)
	return strings.TrimSuffix(publicURL, "/") + "/feedback?" + q.Encode()
}

// ParseQuery validates and decodes feedback-link parameters.
func ParseQuery(q url.Values) (Params, error) {
	p := Params{
		RubricID:   strings.TrimSpace(q.Get("id")),
		TeacherUID: strings.TrimSpace(q.Get("teacherUid")),
	}
	if p.RubricID == "" {
		return Params{}, ErrMissingRubricID
	}
	enc := strings.TrimSpace(q.Get("student"))
	if enc == "" {
		return Params{}, ErrMissingStudent
	}
	if p.TeacherUID == "" {
		return Params{}, ErrMissingTeacherUID
	}
	email, err := DecodeStudentEmail(enc)
	if err != nil {
		return Params{}, err
	}
	p.StudentEmail = email
	return p, nil
}
