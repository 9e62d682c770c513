package rubric

import (
	"context"
	"sync"
	"time"
)

// memoryStore backs tests and offline demos.
type memoryStore struct {
	mu      sync.RWMutex
	rubrics map[string]Rubric
}

func NewInMemoryStore() Store {
	return &memoryStore{rubrics: map[string]Rubric{}}
}

func (m *memoryStore) PutRubric(_ context.Context, r Rubric) (Rubric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = NewID()
		r.CreatedAt = time.Now().Unix()
	}
	r.UpdatedAt = time.Now().Unix()
	m.rubrics[r.ID] = r
	return r, nil
}

func (m *memoryStore) GetRubric(_ context.Context, id string) (Rubric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rubrics[id]
	if !ok {
		return Rubric{}, ErrNotFound
	}
	return r, nil
}

func (m *memoryStore) ListRubrics(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Summary{}
	for _, r := range m.rubrics {
		if r.TeacherEmail != opts.TeacherEmail {
			continue
		}
		out = append(out, Summary{ID: r.ID, Title: r.Header.Title, AssignedStudents: len(r.StudentGrades)})
	}
	return out, nil
}

func (m *memoryStore) DeleteRubric(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rubrics[id]; !ok {
		return ErrNotFound
	}
	delete(m.rubrics, id)
	return nil
}
