// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/aph-tools/aph/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the address point HTTP API (local only)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		composer, err := newComposer()
		if err != nil {
			return err
		}

		repo, err := openJournal()
		if err != nil {
			return err
		}
		defer closeJournal(repo)

		fmt.Printf("📍 Address point API listening on http://%s\n", serveAddr)

		if repo == nil {
			fmt.Println("📓 Journal disabled (set --journal to record created points)")
		}

		return server.NewServer(composer, repo, s).Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}
