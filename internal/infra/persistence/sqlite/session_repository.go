package sqlite

import (
	"context"
	"database/sql"
	"time"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db     *sql.DB
	sealer service.TokenSealer
	now    func() time.Time
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *sql.DB, sealer service.TokenSealer) repository.SessionRepository {
	return &sessionRepository{
		db:     db,
		sealer: sealer,
		now:    time.Now,
	}
}

// Save upserts the sealed session of handle.
func (repo *sessionRepository) Save(ctx context.Context, handle string, session *entity.Session) error {
	sessionM, err := model.FromSessionDomain(repo.sealer, handle, session)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = repo.db.ExecContext(ctx, `
		INSERT INTO browser_sessions (storage_key, user_id, email, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		sessionM.StorageKey,
		sessionM.UserID.String(),
		sessionM.Email,
		sessionM.AccessToken,
		sessionM.RefreshToken,
		sessionM.ExpiresAt,
		repo.now().UTC(),
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save session")
	}

	return nil
}

// Find loads and unseals the session of handle.
func (repo *sessionRepository) Find(ctx context.Context, handle string) (*entity.Session, error) {
	var (
		sessionM model.SessionModel
		userID   string
	)

	err := repo.db.QueryRowContext(ctx, `
		SELECT storage_key, user_id, email, access_token, refresh_token, expires_at
		FROM browser_sessions
		WHERE storage_key = ?`,
		repo.sealer.StorageKey(handle),
	).Scan(&sessionM.StorageKey, &userID, &sessionM.Email, &sessionM.AccessToken, &sessionM.RefreshToken, &sessionM.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find session")
	}

	sessionM.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, errors.Wrap(repository.ErrSessionNotFound, "corrupt user id")
	}

	session, err := model.ToSessionDomain(repo.sealer, &sessionM)
	if err != nil {
		return nil, errors.Wrap(repository.ErrSessionNotFound, err.Error())
	}

	return session, nil
}

// Delete removes the session of handle.
func (repo *sessionRepository) Delete(ctx context.Context, handle string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM browser_sessions WHERE storage_key = ?`, repo.sealer.StorageKey(handle))
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}
