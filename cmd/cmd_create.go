// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/i18n"
	"github.com/aph-tools/aph/settings"
	"github.com/spf13/cobra"
)

type createOptions struct {
	Residential            bool
	Force                  bool
	AddNavigationPoint     bool
	InheritNavigationPoint bool
}

var createOpts = &createOptions{}

// policyFor applies the navigation point flags given on the command line on
// top of the saved settings.
func policyFor(cmd *cobra.Command, s settings.Settings) address.Policy {
	policy := s.Policy(createOpts.Residential)

	if cmd.Flags().Changed("add-navigation-point") {
		policy.AddNavigationPoint = createOpts.AddNavigationPoint
	}

	if cmd.Flags().Changed("inherit-navigation-point") {
		policy.InheritNavigationPoint = createOpts.InheritNavigationPoint
	}

	return policy
}

func readParent(r io.Reader) (*address.ParentSnapshot, error) {
	var parent address.ParentSnapshot
	if err := json.NewDecoder(r).Decode(&parent); err != nil {
		return nil, fmt.Errorf("parsing parent feature: %w", err)
	}

	return &parent, nil
}

func openInput(args []string, prompt string) (io.ReadCloser, error) {
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("error opening file: %w", err)
		}

		return f, nil
	}

	if isTerminal(os.Stdin) {
		fmt.Fprintln(os.Stderr, prompt)
	}

	return io.NopCloser(os.Stdin), nil
}

// compose checks the house number gate and builds the request for parent.
func compose(composer *address.Composer, parent *address.ParentSnapshot, policy address.Policy) (*address.AddressPointRequest, error) {
	if !createOpts.Force && !composer.CanCreate(parent) {
		return nil, fmt.Errorf("%q in %s: %w", parent.Address.HouseNumber, parent.Country, address.ErrInvalidHouseNumber)
	}

	return composer.Compose(parent, policy)
}

var createCmd = &cobra.Command{
	Use:   "create [file]",
	Short: i18n.Translate("en", i18n.CreatePoint),
	Long: `Reads the selected parent feature as JSON from a file or from standard input
and prints the address point creation request.

Example:
  aph create --residential parent.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		composer, err := newComposer()
		if err != nil {
			return err
		}

		in, err := openInput(args, "Reading parent feature from stdin. Paste JSON and press Ctrl+D to finish.")
		if err != nil {
			return err
		}
		defer in.Close()

		parent, err := readParent(in)
		if err != nil {
			return err
		}

		req, err := compose(composer, parent, policyFor(cmd, s))
		if err != nil {
			return err
		}

		repo, err := openJournal()
		if err != nil {
			return err
		}
		defer closeJournal(repo)

		if repo != nil {
			id, err := repo.Save(req)
			if err != nil {
				return err
			}

			log.Printf("Journaled address point %d", id)
		}

		out, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}

		fmt.Println(string(out))

		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&createOpts.Residential, "residential", false, i18n.Translate("en", i18n.CreateResidential))
	createCmd.Flags().BoolVar(&createOpts.Force, "force", false, "create even when the house number is invalid")
	createCmd.Flags().BoolVar(&createOpts.AddNavigationPoint, "add-navigation-point", false, i18n.Translate("en", i18n.AddEntryPoint))
	createCmd.Flags().BoolVar(&createOpts.InheritNavigationPoint, "inherit-navigation-point", false, i18n.Translate("en", i18n.InheritEntryPoint))

	rootCmd.AddCommand(createCmd)
}
