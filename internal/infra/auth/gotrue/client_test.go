package gotrue

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return newClient(srv.URL, "anon-key", srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_SendOTP(t *testing.T) {
	var got otpRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/otp", r.URL.Path)
		assert.Equal(t, "http://localhost:3000/auth/callback", r.URL.Query().Get("redirect_to"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.SendOTP(t.Context(), "ada@example.com", "http://localhost:3000/auth/callback", "challenge")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", got.Email)
	assert.True(t, got.CreateUser)
	assert.Equal(t, "challenge", got.CodeChallenge)
	assert.Equal(t, "s256", got.CodeChallengeMethod)
}

func TestClient_SendOTP_ProviderRejects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":429,"error_code":"over_email_send_rate_limit","msg":"email rate limit exceeded"}`))
	})

	err := client.SendOTP(t.Context(), "ada@example.com", "", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "over_email_send_rate_limit", apiErr.Code)
	assert.Equal(t, "email rate limit exceeded", apiErr.Message)
}

func TestClient_AuthorizeURL(t *testing.T) {
	client := newClient("https://abc.supabase.co/", "anon", http.DefaultClient, slog.Default())

	raw := client.AuthorizeURL("google", "http://localhost:3000/auth/callback", "xyz")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "abc.supabase.co", u.Host)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "http://localhost:3000/auth/callback", u.Query().Get("redirect_to"))
	assert.Equal(t, "xyz", u.Query().Get("code_challenge"))
	assert.Equal(t, "s256", u.Query().Get("code_challenge_method"))
}

func TestClient_ExchangeCode(t *testing.T) {
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "the-code", body["auth_code"])
		assert.Equal(t, "the-verifier", body["code_verifier"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"expires_in":    3600,
			"expires_at":    expiresAt.Unix(),
			"user":          map[string]any{"id": userID.String(), "email": "ada@example.com"},
		})
	})

	session, err := client.ExchangeCode(t.Context(), "the-code", "the-verifier")
	require.NoError(t, err)

	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.True(t, expiresAt.Equal(session.ExpiresAt))
}

func TestClient_ExchangeCode_Consumed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid auth code"}`))
	})

	session, err := client.ExchangeCode(t.Context(), "used", "v")
	assert.Nil(t, session)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_grant", apiErr.Code)
	assert.Equal(t, "Invalid auth code", apiErr.Message)
}

func TestClient_Refresh_UsesExpiresInWhenNoExpiresAt(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r1", body["refresh_token"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "a2",
			"refresh_token": "r2",
			"expires_in":    600,
			"user":          map[string]any{"id": uuid.NewString()},
		})
	})
	client.now = func() time.Time { return now }

	session, err := client.Refresh(t.Context(), "r1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), session.ExpiresAt)
}

func TestClient_GetUser(t *testing.T) {
	userID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))

			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": userID.String(), "email": "ada@example.com"})
	})

	u, err := client.GetUser(t.Context(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	_, err = client.GetUser(t.Context(), "stale")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_SignOut(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SignOut(t.Context(), "user-token"))
	assert.True(t, called)
}

func TestClient_Refresh_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid Refresh Token: Already Used"}`))
	})

	_, err := client.Refresh(t.Context(), "r1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid_grant", apiErr.Code)
	assert.Equal(t, "Invalid Refresh Token: Already Used", apiErr.Message)
}

func TestClient_Refresh_HonorsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Refresh(ctx, "r1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
