// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var journalLimit, journalOffset int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the journal of created address points",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled address points, newest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		repo, err := openJournal()
		if err != nil {
			return err
		}

		if repo == nil {
			return errors.New("no journal configured - pass --journal or set APH_JOURNAL")
		}
		defer closeJournal(repo)

		entries, err := repo.List(journalLimit, journalOffset)
		if err != nil {
			return err
		}

		total, err := repo.Count()
		if err != nil {
			return err
		}

		a, b, c, d := strings.Repeat("─", 6), strings.Repeat("─", 19), strings.Repeat("─", 10), strings.Repeat("─", 40)
		fmt.Printf("╭─%6s─┬─%-19s─┬─%-10s─┬─%-40s╮\n", a, b, c, d)
		fmt.Printf("│ %6s │ %-19s │ %-10s │ %-40s│\n", "Id", "Created", "Number", "Address")
		fmt.Printf("├─%6s─┼─%-19s─┼─%-10s─┼─%-40s┤\n", a, b, c, d)

		for _, e := range entries {
			r := e.Request
			fmt.Printf("│ %6d │ %-19s │ %-10s │ %-40s│\n",
				e.ID,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				r.HouseNumber,
				truncate(r.StreetName+", "+r.CityName, 40),
			)
		}

		fmt.Printf("╰─%6s─┴─%-19s─┴─%-10s─┴─%-40s╯\n", a, b, c, d)
		fmt.Printf("%d of %d address points\n", len(entries), total)

		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

func init() {
	journalListCmd.Flags().IntVar(&journalLimit, "limit", 20, "entries to show")
	journalListCmd.Flags().IntVar(&journalOffset, "offset", 0, "entries to skip")

	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
}
