package util

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.May, 1, 21, 5, 0, 0, time.UTC)

	assert.Equal(t, "May 1, 2024", FormatDate(ts))
	assert.Equal(t, "May 1, 2024 at 09:05 PM", FormatDateTime(ts))
	assert.Equal(t, "Invalid date", FormatDate(time.Time{}))
	assert.Equal(t, "Invalid date", FormatDateTime(time.Time{}))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "negative clamps to zero", duration: -time.Second, expected: "0s"},
		{name: "seconds", duration: 45 * time.Second, expected: "45s"},
		{name: "minutes", duration: 5*time.Minute + 10*time.Second, expected: "5m10s"},
		{name: "hours", duration: 90 * time.Minute, expected: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", Initial("ada@example.com"))
	assert.Equal(t, "É", Initial(" élodie"))
	assert.Equal(t, "U", Initial(""))
}

func TestAvatarURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://cdn.example.com/a.png", AvatarURL("https://cdn.example.com/a.png", "ada"))

	generated := AvatarURL("", "ada")
	require.True(t, strings.HasPrefix(generated, "data:image/svg+xml;charset=utf-8,"))

	svg, err := url.PathUnescape(strings.TrimPrefix(generated, "data:image/svg+xml;charset=utf-8,"))
	require.NoError(t, err)
	assert.Contains(t, svg, ">A</text>")

	escaped, err := url.PathUnescape(strings.TrimPrefix(AvatarURL("", "<script>"), "data:image/svg+xml;charset=utf-8,"))
	require.NoError(t, err)
	assert.Contains(t, escaped, ">U</text>")
}

func TestSafeRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target   string
		expected string
	}{
		{target: "/create-post", expected: "/create-post"},
		{target: "/posts/edit/1?tab=x", expected: "/posts/edit/1?tab=x"},
		{target: "", expected: "/"},
		{target: "https://evil.example.com", expected: "/"},
		{target: "//evil.example.com", expected: "/"},
		{target: "/\\evil.example.com", expected: "/"},
		{target: "javascript:alert(1)", expected: "/"},
		{target: "profile", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, SafeRedirect(tt.target, "/"))
		})
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://blog.example.com/auth/callback", JoinURL("https://blog.example.com/", "/auth/callback"))
}
