package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/greenleaf/reparse"
	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

func newReparseCmd() *cobra.Command {
	var offset, deleteLen int
	var insert string
	var showDiff bool
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "reparse <file>",
		Short: "Apply one edit to a file and reparse it incrementally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			cache := tree.NewNodeCache(cfg.Tree.NodeCacheSize)
			before := tree.Parse(text, tree.WithCache(cache))
			edit := reparse.TextEdit{
				Delete: syntax.NewRange(offset, deleteLen),
				Insert: insert,
			}

			var mismatch bool
			start := time.Now()
			after, strategy, err := reparse.Reparse(before, edit,
				reparse.WithCache(cache),
				reparse.WithValidation(cfg.Reparse.Validate),
				reparse.WithObserver(func(_ reparse.Strategy, m bool) { mismatch = m }),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s reparse of %s in %s\n", strategy, edit, time.Since(start).Round(time.Microsecond))
			if mismatch {
				fmt.Fprintln(cmd.ErrOrStderr(), "incremental tree differed from a full parse; the full tree is shown")
			}

			if showDiff {
				fmt.Fprint(cmd.OutOrStdout(), reparse.Diff(before, after))
				return nil
			}
			return encodeTree(cmd.OutOrStdout(), after, outputFormat, false)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset of the edit")
	cmd.Flags().IntVar(&deleteLen, "delete", 0, "number of bytes to delete at offset")
	cmd.Flags().StringVar(&insert, "insert", "", "text to insert at offset")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a diff of the trees before and after the edit")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, yaml, lines)")

	return cmd
}
