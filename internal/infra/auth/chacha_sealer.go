package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"

	"quill/config"
	"quill/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	sealInfo = "quill session token seal v1"
	keyInfo  = "quill session storage key v1"
)

// chachaSealer is a concrete implementation of the TokenSealer interface using
// XChaCha20-Poly1305 with keys derived from the session secret by HKDF.
type chachaSealer struct {
	sealKey []byte
	hashKey []byte
}

// NewChaChaSealer derives both keys from session.secret.
func NewChaChaSealer(cfg *config.Config) (service.TokenSealer, error) {
	return newChaChaSealer([]byte(cfg.Session.Secret))
}

func newChaChaSealer(secret []byte) (*chachaSealer, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret must be provided")
	}

	sealKey, err := deriveKey(secret, sealInfo, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	hashKey, err := deriveKey(secret, keyInfo, sha256.Size)
	if err != nil {
		return nil, err
	}

	return &chachaSealer{sealKey: sealKey, hashKey: hashKey}, nil
}

func deriveKey(secret []byte, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, errors.Wrap(err, "derive key")
	}

	return key, nil
}

// Seal returns base64(nonce || ciphertext).
func (s *chachaSealer) Seal(plaintext, aad string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return "", errors.WithStack(err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), []byte(aad))

	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

func (s *chachaSealer) Open(sealed, aad string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Wrap(err, "decode sealed token")
	}

	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed token too short")
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(aad))
	if err != nil {
		return "", errors.Wrap(err, "open sealed token")
	}

	return string(plaintext), nil
}

// StorageKey is hex(HMAC-SHA256(handle)), so a leaked table cannot be replayed as cookies.
func (s *chachaSealer) StorageKey(handle string) string {
	mac := hmac.New(sha256.New, s.hashKey)
	mac.Write([]byte(handle))

	return hex.EncodeToString(mac.Sum(nil))
}
