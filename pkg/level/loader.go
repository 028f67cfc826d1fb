// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package level

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout.
type File struct {
	Levels []Level `yaml:"levels"`
}

// LoadCatalog loads the level catalog from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	expanded := expandEnvVars(string(data))

	var file File
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	logrus.Infof("loaded catalog with %d levels", len(file.Levels))
	return NewCatalog(file.Levels), nil
}

// Validate validates the catalog for common errors.
func (f *File) Validate() error {
	if len(f.Levels) == 0 {
		return fmt.Errorf("catalog has no levels")
	}

	ids := make(map[int]bool)
	for _, l := range f.Levels {
		if l.ID < 1 {
			return fmt.Errorf("level %q has invalid id %d (must be >= 1)", l.Title, l.ID)
		}
		if ids[l.ID] {
			return fmt.Errorf("duplicate level id: %d", l.ID)
		}
		ids[l.ID] = true

		if strings.TrimSpace(l.Title) == "" {
			return fmt.Errorf("level %d has empty title", l.ID)
		}
		if !hasKeyword(l.WinKeywords) && l.WinPattern == "" {
			return fmt.Errorf("level %d has no win keywords or win pattern", l.ID)
		}
	}

	// unlocking walks ids upward from 1, so any gap strands every later level
	for id := 1; id <= len(f.Levels); id++ {
		if !ids[id] {
			return fmt.Errorf("level ids must run from 1 to %d without gaps: missing id %d", len(f.Levels), id)
		}
	}

	return nil
}

func hasKeyword(keywords []string) bool {
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			return true
		}
	}
	return false
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
// Any other '$' (prices, "$1" in patterns) is left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
