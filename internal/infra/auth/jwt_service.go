// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"encoding/json"
	"time"

	"quill/config"
	"quill/internal/domain/service"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTokenUnverifiable is returned by Verify when neither a secret nor a key set is configured.
var ErrTokenUnverifiable = errors.New("no token verification key configured")

// accessClaims mirrors the claims the identity provider puts in access tokens.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte      // Shared HS256 secret, when configured.
	keySet oidc.KeySet // Remote JWKS for asymmetric tokens, when configured.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// A JWT secret takes precedence over a JWKS URL; with neither, CanVerify reports false.
func NewJWTService(cfg *config.Config) service.TokenService {
	s := &jwtService{now: time.Now}
	switch {
	case cfg.Supabase.JWTSecret != "":
		s.secret = []byte(cfg.Supabase.JWTSecret)
	case cfg.Supabase.JWKSURL != "":
		// The key set refreshes itself in the background with this context.
		s.keySet = oidc.NewRemoteKeySet(context.Background(), cfg.Supabase.JWKSURL)
	}

	return s
}

func (s *jwtService) CanVerify() bool {
	return len(s.secret) > 0 || s.keySet != nil
}

// Verify checks the signature and expiry of an access token.
func (s *jwtService) Verify(ctx context.Context, token string) (*service.Claims, error) {
	switch {
	case len(s.secret) > 0:
		return s.verifyHMAC(token)
	case s.keySet != nil:
		return s.verifyKeySet(ctx, token)
	default:
		return nil, ErrTokenUnverifiable
	}
}

func (s *jwtService) verifyHMAC(token string) (*service.Claims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}

	return toClaims(claims)
}

func (s *jwtService) verifyKeySet(ctx context.Context, token string) (*service.Claims, error) {
	payload, err := s.keySet.VerifySignature(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token signature")
	}

	claims := &accessClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, errors.Wrap(err, "failed to decode token claims")
	}

	validator := jwt.NewValidator(jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err := validator.Validate(claims); err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}

	return toClaims(claims)
}

func toClaims(claims *accessClaims) (*service.Claims, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "token subject is not a user id")
	}

	out := &service.Claims{
		UserID: userID,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
