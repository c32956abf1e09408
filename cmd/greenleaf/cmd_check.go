package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dhamidi/greenleaf/reparse"
)

var errCheckFailed = errors.New("incremental reparse disagreed with a full parse")

func newCheckCmd() *cobra.Command {
	var edits int
	var seed uint64
	var records bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check incremental reparsing against full parses",
		Long: `Apply random edits to each file and compare every incremental reparse
with a full parse of the edited text. With --records, each file is instead
a single edit record: offset, delete length and inserted text on the first
three lines, followed by the text to edit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if records {
				return checkRecords(cmd, args)
			}

			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"file", "edits", "full", "leaf", "block", "failures"})

			failed := 0
			for _, path := range args {
				text, err := readSource(cmd, path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				report := reparse.CheckRandom(text, edits, seed)
				tbl.AppendRow(table.Row{
					path,
					report.Edits,
					report.Strategies[reparse.Full],
					report.Strategies[reparse.Leaf],
					report.Strategies[reparse.Block],
					len(report.Failures),
				})
				for _, f := range report.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n%v\n", path, f.Edit, f.Err)
				}
				failed += len(report.Failures)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			if failed > 0 {
				return fmt.Errorf("%w: %d edits", errCheckFailed, failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&edits, "edits", "n", 1000, "random edits per file")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&records, "records", false, "treat files as edit records")

	return cmd
}

func checkRecords(cmd *cobra.Command, paths []string) error {
	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := reparse.CheckFromData(data); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d failed\n", len(paths), failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d records", errCheckFailed, failed)
	}
	return nil
}
