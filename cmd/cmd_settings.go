// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/aph-tools/aph/i18n"
	"github.com/aph-tools/aph/settings"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved toggles",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved toggles",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		row := func(label string, key string, v bool) {
			fmt.Printf("%-24s %-5t %s\n", key, v, i18n.Translate(options.Locale, label))
		}

		fmt.Printf("# %s\n", options.SettingsPath)
		row(i18n.AddEntryPoint, "addNavigationPoint", s.AddNavigationPoint)
		row(i18n.InheritEntryPoint, "inheritNavigationPoint", s.InheritNavigationPoint)
		row(i18n.CopyHNToName, "autoSetHNToName", s.AutoSetHNToName)

		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Change a saved toggle",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		s, err := loadSettings()
		if err != nil {
			return err
		}

		if err := s.Set(args[0], value); err != nil {
			return err
		}

		return settings.Save(options.SettingsPath, s)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
