// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package level describes the static level catalog supplied at startup.
package level

import "slices"

// DefaultIntro is the character's opening line when a level defines none.
const DefaultIntro = "Hello, traveler. I am keeping a secret word, and I do not intend to share it. What would you like to talk about?"

// Level is one unit of gameplay. WinKeywords are matched as case-insensitive
// substrings; WinPattern is an optional regular expression.
type Level struct {
	ID           int      `yaml:"id"`
	Title        string   `yaml:"title"`
	Difficulty   string   `yaml:"difficulty"`
	SystemPrompt string   `yaml:"system_prompt"`
	WinKeywords  []string `yaml:"win_keywords"`
	WinPattern   string   `yaml:"win_pattern,omitempty"`
	Intro        string   `yaml:"intro,omitempty"`
}

// IntroLine returns the level's opening character turn.
func (l Level) IntroLine() string {
	if l.Intro != "" {
		return l.Intro
	}
	return DefaultIntro
}

// Catalog is an ordered, read-only set of levels.
type Catalog struct {
	levels []Level
	byID   map[int]int
}

// NewCatalog builds a catalog from levels in the given order. The slice is
// copied; later changes to it do not affect the catalog.
func NewCatalog(levels []Level) *Catalog {
	c := &Catalog{
		levels: make([]Level, len(levels)),
		byID:   make(map[int]int, len(levels)),
	}
	for i, l := range levels {
		l.WinKeywords = slices.Clone(l.WinKeywords)
		c.levels[i] = l
		c.byID[l.ID] = i
	}
	return c
}

// Get returns the level with id.
func (c *Catalog) Get(id int) (Level, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Level{}, false
	}
	return c.levels[i], true
}

// Levels returns a copy of all levels in catalog order.
func (c *Catalog) Levels() []Level {
	return slices.Clone(c.levels)
}

// First returns the first level in catalog order.
func (c *Catalog) First() (Level, bool) {
	if len(c.levels) == 0 {
		return Level{}, false
	}
	return c.levels[0], true
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}
