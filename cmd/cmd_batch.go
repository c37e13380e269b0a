// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/aph-tools/aph/address"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var batchMaxProcs int

type batchResult struct {
	line int
	req  *address.AddressPointRequest
	err  error
}

// composeAll composes every parent concurrently and returns the results in
// input order.
func composeAll(composer *address.Composer, parents [][]byte, policy address.Policy, maxProcs int) []batchResult {
	n := len(parents)
	results := make([]batchResult, n)

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription("Composing address points"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, maxProcs)

	for i, data := range parents {
		wg.Add(1)

		go func(i int, data []byte) {
			defer wg.Done()
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			res := batchResult{line: i + 1}

			parent, err := readParent(bytes.NewReader(data))
			if err == nil {
				res.req, err = compose(composer, parent, policy)
			}

			res.err = err
			results[i] = res

			if bar != nil {
				_ = bar.Add(1)
			}
		}(i, data)
	}

	wg.Wait()

	return results
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Create address points for many parent features",
	Long: `Reads one parent feature JSON document per line and writes one creation
request per line, in the same order. Lines that fail are reported on stderr
and skipped.`,
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

		in, err := openInput(args, "Reading parent features from stdin, one per line. Press Ctrl+D to finish.")
		if err != nil {
			return err
		}
		defer in.Close()

		var parents [][]byte

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			parents = append(parents, bytes.Clone(line))
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		maxProcs := batchMaxProcs
		if maxProcs <= 0 {
			maxProcs = runtime.NumCPU()
		}

		results := composeAll(composer, parents, policyFor(cmd, s), maxProcs)

		repo, err := openJournal()
		if err != nil {
			return err
		}
		defer closeJournal(repo)

		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		enc := json.NewEncoder(out)

		var failed int

		for _, res := range results {
			if res.err != nil {
				failed++

				log.Printf("Composing record %d failed - %v", res.line, res.err)

				continue
			}

			if repo != nil {
				if _, err := repo.Save(res.req); err != nil {
					return fmt.Errorf("journaling record %d: %w", res.line, err)
				}
			}

			if err := enc.Encode(res.req); err != nil {
				return fmt.Errorf("writing record %d: %w", res.line, err)
			}
		}

		log.Printf("Batch complete - %d composed, %d failed.", len(results)-failed, failed)

		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchMaxProcs, "max-procs", 0, "concurrent workers (defaults to the number of CPUs)")
	batchCmd.Flags().BoolVar(&createOpts.Residential, "residential", false, "create residential points")
	batchCmd.Flags().BoolVar(&createOpts.Force, "force", false, "create even when the house number is invalid")
	batchCmd.Flags().BoolVar(&createOpts.AddNavigationPoint, "add-navigation-point", false, "add an entry point")
	batchCmd.Flags().BoolVar(&createOpts.InheritNavigationPoint, "inherit-navigation-point", false, "inherit the parent's entry point")

	rootCmd.AddCommand(batchCmd)
}
