// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/spatial"
	"github.com/spf13/cobra"
)

// isTerminal reports whether f is an interactive device. When f cannot be
// stat-ed we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugInteriorCmd = &cobra.Command{
	Use:   "interior [file]",
	Short: "Find the interior point of a GeoJSON polygon",
	Long: `Reads a GeoJSON polygon from a file or from standard input and prints the
point the scan-line search picks for it, the length of the winning segment
and its ground distance in meters from the centroid.

$ echo '{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10]]]}' | aph debug interior
{"distance":0,"found":true,"inside":true,"point":{"x":5,"y":5},"quality":10}
	`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		in, err := openInput(args, "Reading GeoJSON from stdin. Paste JSON and press Ctrl+D to finish.")
		if err != nil {
			return err
		}
		defer in.Close()

		var g spatial.Geometry
		if err := json.NewDecoder(in).Decode(&g); err != nil {
			return fmt.Errorf("parsing geometry: %w", err)
		}

		if g.Polygon == nil {
			return fmt.Errorf("expected a Polygon: %w", address.ErrNoGeometry)
		}

		outer := g.Polygon.Outer
		center := outer.Centroid()
		p, quality := outer.InteriorPoint(center)

		out := map[string]any{
			"point":    p,
			"found":    quality != spatial.NoSegment,
			"inside":   g.Polygon.Contains(p),
			"distance": center.GroundDistance(p),
		}
		if quality != spatial.NoSegment {
			out["quality"] = quality
		}

		s, err := json.Marshal(out)
		if err != nil {
			return err
		}

		fmt.Println(string(s))

		return nil
	},
}

var debugHouseNumbersCountry string

var debugHouseNumbersCmd = &cobra.Command{
	Use:   "housenumbers",
	Short: "Check house numbers against a country's rules",
	Long: `Reads one house number per line and prints it followed by its validity.

$ printf '12А\n12-А\n' | aph debug housenumbers --country Ukraine
12А	valid
12-А	invalid
	`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter house numbers to check, one per line…")
		}

		registry := address.DefaultRegistry()

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			hn := scanner.Text()

			verdict := "invalid"
			if registry.Validate(debugHouseNumbersCountry, hn) {
				verdict = "valid"
			}

			fmt.Printf("%s\t%s\n", hn, verdict)
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

var (
	debugRenameCategories []string
	debugRenameName       string
)

var debugRenameCmd = &cobra.Command{
	Use:   "rename <house-number>",
	Short: "Show the name a venue would get from its house number",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		fmt.Println(renameVerdict(debugRenameCategories, debugRenameName, args[0]))
	},
}

// renameVerdict describes what an address update would do to the venue name.
func renameVerdict(categories []string, name, houseNumber string) string {
	if renamed, changed := address.NameFromHouseNumber(categories, name, houseNumber); changed {
		return fmt.Sprintf("renamed\t%q", renamed)
	}

	return fmt.Sprintf("unchanged\t%q", name)
}

func init() {
	debugHouseNumbersCmd.Flags().StringVar(&debugHouseNumbersCountry, "country", address.DefaultCountry, "country whose rules apply")
	debugRenameCmd.Flags().StringSliceVar(&debugRenameCategories, "category", []string{address.CategoryOther}, "venue categories")
	debugRenameCmd.Flags().StringVar(&debugRenameName, "name", "", "current venue name")

	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugInteriorCmd)
	debugCmd.AddCommand(debugHouseNumbersCmd)
	debugCmd.AddCommand(debugRenameCmd)
}

