// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings persists the address point toggles between runs.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aph-tools/aph/address"
)

// Settings are the user's saved toggles.
type Settings struct {
	AddNavigationPoint     bool `json:"addNavigationPoint"`
	InheritNavigationPoint bool `json:"inheritNavigationPoint"`
	AutoSetHNToName        bool `json:"autoSetHNToName"`
}

// Policy returns the creation policy for s.
func (s Settings) Policy(residential bool) address.Policy {
	return address.Policy{
		AddNavigationPoint:     s.AddNavigationPoint,
		InheritNavigationPoint: s.InheritNavigationPoint,
		Residential:            residential,
	}
}

// DefaultPath returns the settings file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}

	return filepath.Join(dir, "aph", "settings.json"), nil
}

// Load reads the settings at path. A missing file yields the zero Settings.
func Load(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path) // #nosec G304 - path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}

		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}

// Set updates the toggle named key ("addNavigationPoint",
// "inheritNavigationPoint" or "autoSetHNToName").
func (s *Settings) Set(key string, value bool) error {
	switch key {
	case "addNavigationPoint":
		s.AddNavigationPoint = value
	case "inheritNavigationPoint":
		s.InheritNavigationPoint = value
	case "autoSetHNToName":
		s.AutoSetHNToName = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}
