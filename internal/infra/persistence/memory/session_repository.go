// Package memory contains the in-process session backend. Sessions do not
// survive a restart.
package memory

import (
	"context"
	"sync"

	"quill/internal/domain/entity"
	"quill/internal/domain/repository"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

func (repo *sessionRepository) Save(_ context.Context, handle string, session *entity.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.sessions[handle] = session.Clone()

	return nil
}

func (repo *sessionRepository) Find(_ context.Context, handle string) (*entity.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	session, ok := repo.sessions[handle]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return session.Clone(), nil
}

func (repo *sessionRepository) Delete(_ context.Context, handle string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	delete(repo.sessions, handle)

	return nil
}
