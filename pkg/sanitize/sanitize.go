// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package sanitize normalizes raw player-supplied text (usernames and guesses)
// into bounded, markup-free strings.
package sanitize

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxInputLength is the longest raw input accepted on any text entry point.
	MaxInputLength = 2000
	// MaxUsernameLength bounds the stored username.
	MaxUsernameLength = 32
	// DefaultUsername is used whenever a username sanitizes to nothing.
	DefaultUsername = "Player"
)

// ErrInputTooLong is returned by ClampInput. Its message is shown to the player as-is.
var ErrInputTooLong = errors.New("Input is too long. Please keep it under 2000 characters.")

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	specialPattern = regexp.MustCompile("[<>&\"'`]")
	domainPattern  = regexp.MustCompile(`(?i)^[a-z0-9\-]+(\.[a-z0-9\-]+)*\.(com|net|org|io|co|ai|dev|app|gg|xyz|me|info|edu|gov|us|uk)([/?#:].*)?$`)

	// "scheme://" for any scheme, plus the slash-less forms browsers act on
	schemePattern = regexp.MustCompile(`(?i)^\s*(?:[a-z][a-z0-9+.\-]*://|(?:javascript|vbscript|data|mailto|file|about|blob|tel|sms|https?|ftp):)`)
)

// ClampInput rejects raw input longer than MaxInputLength characters and
// otherwise returns it unchanged. It must run before any sanitization.
func ClampInput(raw string) (string, error) {
	if utf8.RuneCountInString(raw) > MaxInputLength {
		return "", ErrInputTooLong
	}
	return raw, nil
}

// Username returns a non-empty, tag-free display name. URL-like input is
// collapsed to its first host label ("https://www.bark.com/x" -> "bark").
func Username(raw string) string {
	s := clean(raw)

	if looksLikeURL(s) {
		s = stripScheme(s)
		if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
			s = s[4:]
		}
		if i := strings.IndexAny(s, "/?#"); i >= 0 {
			s = s[:i]
		}
		if i := strings.Index(s, "."); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	s = truncate(s, MaxUsernameLength)
	if s == "" {
		return DefaultUsername
	}
	return s
}

// Answer returns a tag-free guess. Unlike Username it keeps domain-like words
// intact and only drops a leading scheme, so "https://timber.com" becomes
// "timber.com". The result may be empty.
func Answer(raw string) string {
	return stripScheme(clean(raw))
}

// stripScheme removes leading schemes until none is left, so
// "javascript:javascript:x" cannot leave one behind.
func stripScheme(s string) string {
	for schemePattern.MatchString(s) {
		s = strings.TrimSpace(schemePattern.ReplaceAllString(s, ""))
	}
	return s
}

func clean(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.TrimSpace(s)
	s = tagPattern.ReplaceAllString(s, "")
	s = specialPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func looksLikeURL(s string) bool {
	if schemePattern.MatchString(s) {
		return true
	}
	if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		return true
	}
	return domainPattern.MatchString(s)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}
