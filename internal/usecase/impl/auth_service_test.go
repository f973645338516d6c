package impl

import (
	"context"
	"testing"
	"time"

	"quill/config"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	mockService "quill/internal/mocks/service"
	mockUsecase "quill/internal/mocks/usecase"
	"quill/internal/usecase"
	"quill/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	identity *mockService.MockIdentityProvider
	sessions *mockUsecase.MockSessionUsecase
}

func createTestAuthService(t *testing.T, siteURL string) authServiceFixtures {
	identity := mockService.NewMockIdentityProvider(t)
	sessions := mockUsecase.NewMockSessionUsecase(t)

	cfg := &config.Config{}
	cfg.Supabase.SiteURL = siteURL

	service := NewAuthService(AuthServiceParams{
		Identity:  identity,
		Sessions:  sessions,
		Validator: validation.New(),
		Config:    cfg,
		Logger:    newDiscardLogger(),
	})

	return authServiceFixtures{
		service:  service,
		identity: identity,
		sessions: sessions,
	}
}

func TestAuthService_SendMagicLink_Success(t *testing.T) {
	fx := createTestAuthService(t, "https://blog.example.com")
	ctx := context.Background()

	var challenge string
	fx.identity.EXPECT().
		SendOTP(ctx, "ada@example.com", "https://blog.example.com/auth/callback?redirectTo=%2Fcreate-post", mock.AnythingOfType("string")).
		Run(func(_ context.Context, _, _, c string) { challenge = c }).
		Return(nil).
		Once()

	verifier, err := fx.service.SendMagicLink(ctx, &usecase.MagicLinkInput{
		Email:      "  ada@example.com ",
		RedirectTo: "/create-post",
	})

	require.NoError(t, err)
	require.NotEmpty(t, verifier)
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(verifier), challenge)
}

func TestAuthService_SendMagicLink_UsesRequestOrigin(t *testing.T) {
	fx := createTestAuthService(t, "")
	ctx := context.Background()

	fx.identity.EXPECT().
		SendOTP(ctx, "ada@example.com", "http://localhost:8080/auth/callback", mock.Anything).
		Return(nil).
		Once()

	_, err := fx.service.SendMagicLink(ctx, &usecase.MagicLinkInput{
		Email:      "ada@example.com",
		RedirectTo: "https://evil.example.com",
		Origin:     "http://localhost:8080",
	})
	require.NoError(t, err)
}

func TestAuthService_SendMagicLink_InvalidEmail(t *testing.T) {
	fx := createTestAuthService(t, "https://blog.example.com")

	_, err := fx.service.SendMagicLink(context.Background(), &usecase.MagicLinkInput{Email: "not-an-email"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid email address", verr.ByField()["email"])
}

func TestAuthService_SendMagicLink_ProviderFailure(t *testing.T) {
	fx := createTestAuthService(t, "https://blog.example.com")
	ctx := context.Background()

	fx.identity.EXPECT().
		SendOTP(ctx, "ada@example.com", mock.Anything, mock.Anything).
		Return(errors.New("Signups not allowed for otp")).
		Once()

	_, err := fx.service.SendMagicLink(ctx, &usecase.MagicLinkInput{Email: "ada@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrAuth)
	assert.NotContains(t, err.Error(), "Signups")
}

func TestAuthService_OAuthURL(t *testing.T) {
	fx := createTestAuthService(t, "https://blog.example.com")

	var challenge string
	fx.identity.EXPECT().
		AuthorizeURL("google", "https://blog.example.com/auth/callback?redirectTo=%2Fprofile", mock.AnythingOfType("string")).
		RunAndReturn(func(_, _, c string) string {
			challenge = c

			return "https://project.supabase.co/auth/v1/authorize?provider=google"
		}).
		Once()

	authURL, verifier, err := fx.service.OAuthURL(context.Background(), &usecase.OAuthInput{Provider: "Google", RedirectTo: "/profile"})

	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co/auth/v1/authorize?provider=google", authURL)
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(verifier), challenge)
}

func TestAuthService_OAuthURL_InvalidProvider(t *testing.T) {
	fx := createTestAuthService(t, "https://blog.example.com")

	_, _, err := fx.service.OAuthURL(context.Background(), &usecase.OAuthInput{Provider: "../admin"})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_ExchangeCodeForSession(t *testing.T) {
	t.Run("establishes the session and honours a local redirect", func(t *testing.T) {
		fx := createTestAuthService(t, "")
		ctx := context.Background()
		session := &entity.Session{UserID: uuid.New(), AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)}

		fx.identity.EXPECT().ExchangeCode(ctx, "code-1", "verifier-1").Return(session, nil).Once()
		fx.sessions.EXPECT().Establish(ctx, "h1", session).Return().Once()

		target, err := fx.service.ExchangeCodeForSession(ctx, "h1", &usecase.ExchangeInput{
			Code:       "code-1",
			Verifier:   "verifier-1",
			RedirectTo: "/create-post",
		})

		require.NoError(t, err)
		assert.Equal(t, "/create-post", target)
	})

	t.Run("external redirect falls back to home", func(t *testing.T) {
		fx := createTestAuthService(t, "")
		ctx := context.Background()
		session := &entity.Session{UserID: uuid.New()}

		fx.identity.EXPECT().ExchangeCode(ctx, "code-1", "verifier-1").Return(session, nil).Once()
		fx.sessions.EXPECT().Establish(ctx, "h1", session).Return().Once()

		target, err := fx.service.ExchangeCodeForSession(ctx, "h1", &usecase.ExchangeInput{
			Code:       "code-1",
			Verifier:   "verifier-1",
			RedirectTo: "https://evil.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "/", target)
	})

	t.Run("missing code never reaches the provider", func(t *testing.T) {
		fx := createTestAuthService(t, "")

		_, err := fx.service.ExchangeCodeForSession(context.Background(), "h1", &usecase.ExchangeInput{Verifier: "v"})

		assert.ErrorIs(t, err, domainerrors.ErrExchange)
	})

	t.Run("missing verifier", func(t *testing.T) {
		fx := createTestAuthService(t, "")

		_, err := fx.service.ExchangeCodeForSession(context.Background(), "h1", &usecase.ExchangeInput{Code: "c"})

		assert.ErrorIs(t, err, domainerrors.ErrExchange)
	})

	t.Run("provider rejects the code", func(t *testing.T) {
		fx := createTestAuthService(t, "")
		ctx := context.Background()

		fx.identity.EXPECT().ExchangeCode(ctx, "used", "v").Return(nil, errors.New("invalid flow state")).Once()

		_, err := fx.service.ExchangeCodeForSession(ctx, "h1", &usecase.ExchangeInput{Code: "used", Verifier: "v"})

		assert.ErrorIs(t, err, domainerrors.ErrExchange)
	})
}
