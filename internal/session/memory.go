package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps sessions in process. Expired entries are dropped
// when read or swept.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
	logger   *slog.Logger
}

func NewMemoryRepository(logger *slog.Logger) *MemoryRepository {
	logger.Debug("Initializing in-memory session repository")

	return &MemoryRepository{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
		logger:   logger,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s.clone()
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if s.Expired(r.now()) {
		r.mu.Lock()
		if cur, ok := r.sessions[id]; ok && cur.Expired(r.now()) {
			delete(r.sessions, id)
		}
		r.mu.Unlock()
		return nil, ErrNotFound
	}

	return s.clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return ErrNotFound
	}

	r.sessions[s.ID] = s.clone()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}

	delete(r.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *MemoryRepository) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *MemoryRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("Swept expired sessions", "component", "session_memory_repository", "removed", n)
			}
		}
	}
}
