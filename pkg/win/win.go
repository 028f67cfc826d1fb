// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package win decides whether a piece of text reveals a level's secret.
package win

import (
	"regexp"
	"strings"
	"sync"

	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/sirupsen/logrus"
)

// CheckWin reports whether text satisfies the level's win condition.
//
// Keywords are matched as case-insensitive substrings anywhere in text, so
// "Fine, the secret word is BARK." matches "bark". When no keyword matches
// and the level declares a pattern, the pattern is compiled case-insensitively
// and tested. A pattern that does not compile never matches.
//
// CheckWin is pure: the result depends only on its arguments.
func CheckWin(l level.Level, text string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, kw := range l.WinKeywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}

	if l.WinPattern == "" {
		return false
	}
	re := compile(l.WinPattern)
	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// compiled memoizes pattern compilation. A nil value records a pattern that
// failed to compile.
var compiled sync.Map // map[string]*regexp.Regexp

func compile(pattern string) *regexp.Regexp {
	if v, ok := compiled.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		logrus.Warnf("win pattern %q does not compile, treating as no match: %v", pattern, err)
		re = nil
	}
	compiled.Store(pattern, re)
	return re
}
