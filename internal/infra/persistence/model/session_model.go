// Package model holds the persisted shape of browser-context sessions shared
// by the relational session backends.
package model

import (
	"time"

	"quill/internal/domain/entity"
	"quill/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SessionModel mirrors the 'browser_sessions' table. Tokens are sealed and the
// row is keyed by a keyed hash of the handle, so a leaked table reveals neither.
type SessionModel struct {
	StorageKey   string    `gorm:"type:varchar(64);primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Email        string    `gorm:"type:varchar(320);not null"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "browser_sessions"
}

// FromSessionDomain seals session for storage under handle.
func FromSessionDomain(sealer service.TokenSealer, handle string, session *entity.Session) (*SessionModel, error) {
	key := sealer.StorageKey(handle)

	access, err := sealer.Seal(session.AccessToken, key)
	if err != nil {
		return nil, errors.Wrap(err, "seal access token")
	}
	refresh, err := sealer.Seal(session.RefreshToken, key)
	if err != nil {
		return nil, errors.Wrap(err, "seal refresh token")
	}

	return &SessionModel{
		StorageKey:   key,
		UserID:       session.UserID,
		Email:        session.Email,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    session.ExpiresAt.UTC(),
	}, nil
}

// ToSessionDomain opens the sealed tokens of m.
func ToSessionDomain(sealer service.TokenSealer, m *SessionModel) (*entity.Session, error) {
	access, err := sealer.Open(m.AccessToken, m.StorageKey)
	if err != nil {
		return nil, errors.Wrap(err, "open access token")
	}
	refresh, err := sealer.Open(m.RefreshToken, m.StorageKey)
	if err != nil {
		return nil, errors.Wrap(err, "open refresh token")
	}

	return &entity.Session{
		UserID:       m.UserID,
		Email:        m.Email,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    m.ExpiresAt,
	}, nil
}
