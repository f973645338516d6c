package postgres

import (
	"context"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db     *gorm.DB
	sealer service.TokenSealer
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB, sealer service.TokenSealer) repository.SessionRepository {
	return &sessionRepository{
		db:     db,
		sealer: sealer,
	}
}

// Save upserts the sealed session of handle.
func (repo *sessionRepository) Save(ctx context.Context, handle string, session *entity.Session) error {
	sessionM, err := model.FromSessionDomain(repo.sealer, handle, session)
	if err != nil {
		return errors.WithStack(err)
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "email", "access_token", "refresh_token", "expires_at", "updated_at"}),
		}).
		Create(sessionM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save session")
	}

	return nil
}

// Find loads and unseals the session of handle.
func (repo *sessionRepository) Find(ctx context.Context, handle string) (*entity.Session, error) {
	var sessionM model.SessionModel

	err := repo.db.WithContext(ctx).
		Where("storage_key = ?", repo.sealer.StorageKey(handle)).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find session")
	}

	session, err := model.ToSessionDomain(repo.sealer, &sessionM)
	if err != nil {
		// A row sealed under another secret cannot be used; treat it as absent.
		return nil, errors.Wrap(repository.ErrSessionNotFound, err.Error())
	}

	return session, nil
}

// Delete removes the session of handle.
func (repo *sessionRepository) Delete(ctx context.Context, handle string) error {
	err := repo.db.WithContext(ctx).
		Where("storage_key = ?", repo.sealer.StorageKey(handle)).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}
