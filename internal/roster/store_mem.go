package roster

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	students map[string]Student
}

func NewInMemoryStore() Store {
	return &memoryStore{students: map[string]Student{}}
}

func (m *memoryStore) UpsertStudent(_ context.Context, st Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.CreatedAt == 0 {
		st.CreatedAt = time.Now().Unix()
	}
	m.students[st.Email] = st
	return nil
}

func (m *memoryStore) GetStudent(_ context.Context, email string) (Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.students[email]
	if !ok {
		return Student{}, ErrNotFound
	}
	return st, nil
}

func (m *memoryStore) ListStudents(_ context.Context) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Student, 0, len(m.students))
	for _, st := range m.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) DeleteStudent(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[email]; !ok {
		return ErrNotFound
	}
	delete(m.students, email)
	return nil
}
