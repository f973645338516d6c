package service

// TokenSealer encrypts session tokens before they are written to a persistent
// session backend.
type TokenSealer interface {
	// Seal encrypts plaintext. aad binds the ciphertext to its row (the storage key).
	Seal(plaintext, aad string) (string, error)

	// Open reverses Seal. It fails when the ciphertext or aad was tampered with.
	Open(sealed, aad string) (string, error)

	// StorageKey derives the opaque key a browser-context handle is stored under.
	StorageKey(handle string) string
}
