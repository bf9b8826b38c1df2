package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mmeshcher/flora-console/internal/session"
)

type memoryEntry struct {
	token    string
	lastSeen time.Time
}

// MemoryStore хранит сеансы в памяти процесса. Используется, когда БД не настроена.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry), now: time.Now}
}

// Load возвращает токен сеанса.
func (s *MemoryStore) Load(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return "", session.ErrNotFound
	}
	e.lastSeen = s.now()
	s.sessions[id] = e
	return e.token, nil
}

// Save сохраняет токен сеанса.
func (s *MemoryStore) Save(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{token: token, lastSeen: s.now()}
	return nil
}

// Delete удаляет сеанс.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// PurgeIdle удаляет сеансы, к которым не обращались дольше idle.
func (s *MemoryStore) PurgeIdle(_ context.Context, idle time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-idle)
	var n int64
	for id, e := range s.sessions {
		if e.lastSeen.Before(deadline) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Close ничего не делает.
func (s *MemoryStore) Close() error {
	return nil
}
