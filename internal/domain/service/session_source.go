package service

import "quill/internal/domain/entity"

// SessionSource is the read side of the session store used by infrastructure
// that needs the current token of a browser context.
type SessionSource interface {
	// GetSession returns the current session of handle or nil. It never blocks on the network.
	GetSession(handle string) *entity.Session

	// Subscribe registers fn for session-changed events and returns a function
	// that removes it.
	Subscribe(fn func(entity.SessionChanged)) (unsubscribe func())
}
