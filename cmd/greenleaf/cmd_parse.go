package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dhamidi/greenleaf/format"
	"github.com/dhamidi/greenleaf/parser"
	"github.com/dhamidi/greenleaf/tree"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var colored bool
	var showStats bool
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse files and print their syntax trees",
		Long:  "Parse files and print their syntax trees. Use - to read from standard input.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := make([]string, len(args))
			for i, path := range args {
				text, err := readSource(cmd, path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				texts[i] = text
			}

			cache := tree.NewNodeCache(cfg.Tree.NodeCacheSize)
			opts := []tree.Option{tree.WithCache(cache)}
			if expression {
				opts = append(opts, tree.WithEntry(parser.Expression))
			}
			start := time.Now()
			trees, err := tree.ParseAll(cmd.Context(), texts, opts...)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			for i, t := range trees {
				if len(trees) > 1 && outputFormat == "tree" {
					fmt.Fprintf(out, "== %s\n", args[i])
				}
				if err := encodeTree(out, t, outputFormat, colored); err != nil {
					return fmt.Errorf("encode %s: %w", args[i], err)
				}
			}
			if showStats {
				fmt.Fprintln(cmd.ErrOrStderr(), statsTable(args, trees, cache, elapsed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, yaml, lines)")
	cmd.Flags().BoolVar(&colored, "color", false, "colorize tree output")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print parse and cache statistics to stderr")
	cmd.Flags().BoolVar(&expression, "expr", false, "parse the input as a single expression")

	return cmd
}

func encodeTree(w io.Writer, t *tree.Tree, outputFormat string, colored bool) error {
	var encoder format.Encoder
	switch outputFormat {
	case "tree":
		tree.Fdump(w, t, colored)
		return nil
	case "json":
		encoder = format.NewJSONEncoder(w)
	case "yaml":
		encoder = format.NewYAMLEncoder(w)
	case "lines":
		encoder = format.NewLineEncoder(w)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	return encoder.Encode(t)
}

func statsTable(names []string, trees []*tree.Tree, cache *tree.NodeCache, elapsed time.Duration) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"file", "size", "nodes", "errors"})

	var size, nodes, errs int
	for i, t := range trees {
		n := len(t.Root().Descendants())
		tbl.AppendRow(table.Row{names[i], humanize.Bytes(uint64(len(t.Text()))), humanize.Comma(int64(n)), len(t.Errors())})
		size += len(t.Text())
		nodes += n
		errs += len(t.Errors())
	}

	stats := cache.Stats()
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d files in %s", len(trees), elapsed.Round(time.Microsecond)),
		humanize.Bytes(uint64(size)),
		humanize.Comma(int64(nodes)),
		errs,
	})
	tbl.AppendFooter(table.Row{
		"node cache",
		fmt.Sprintf("%s entries", humanize.Comma(int64(stats.Entries))),
		fmt.Sprintf("%s hits", humanize.Comma(stats.Hits)),
		fmt.Sprintf("%s evictions", humanize.Comma(stats.Evictions)),
	})
	return tbl.Render()
}
