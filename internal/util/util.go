// Package util holds small formatting and URL helpers shared by the view
// layer and the services.
package util

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	dateLayout     = "January 2, 2006"
	dateTimeLayout = "January 2, 2006 at 03:04 PM"
	invalidDate    = "Invalid date"
)

// FormatDate renders t as a long US date, e.g. "May 1, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return invalidDate
	}

	return t.Format(dateLayout)
}

// FormatDateTime renders t with its time of day, e.g. "May 1, 2024 at 09:30 AM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return invalidDate
	}

	return t.Format(dateTimeLayout)
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// Initial is the upper-cased first letter of identifier, or "U".
func Initial(identifier string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(identifier))
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return "U"
	}

	return string(unicode.ToUpper(r))
}

const avatarSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">` +
	`<rect width="100" height="100" rx="50" fill="#000000" />` +
	`<text x="50" y="62" font-family="Arial, sans-serif" font-size="45" font-weight="bold" fill="#ffffff" text-anchor="middle">%s</text>` +
	`</svg>`

// AvatarURL returns avatarURL, or a data URL of a round SVG showing the
// initial of identifier when avatarURL is empty.
func AvatarURL(avatarURL, identifier string) string {
	if avatarURL != "" {
		return avatarURL
	}

	initial := Initial(identifier)
	switch initial {
	case "<", ">", "&", "\"", "'":
		initial = "U"
	}

	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(fmt.Sprintf(avatarSVG, initial))
}

// SafeRedirect returns target when it is a path on this site, else fallback.
// Absolute URLs, scheme-relative URLs and backslash tricks are refused.
func SafeRedirect(target, fallback string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") {
		return fallback
	}
	if strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n\t") {
		return fallback
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}

	return u.String()
}

// JoinURL appends path to base, which may carry a trailing slash.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
