package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/greenleaf/lexer"
)

func newTokensCmd() *cobra.Command {
	var colored bool
	var skipTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			kind := color.New(color.FgCyan)
			if !colored {
				kind.DisableColor()
			}
			out := cmd.OutOrStdout()
			offset := 0
			for _, tok := range lexer.Tokenize(text) {
				start := offset
				offset += tok.Len
				if skipTrivia && tok.Kind.IsTrivia() {
					continue
				}
				fmt.Fprintf(out, "%s@[%d; %d) %s\n", kind.Sprint(tok.Kind), start, offset, strconv.Quote(text[start:offset]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&colored, "color", false, "colorize token kinds")
	cmd.Flags().BoolVar(&skipTrivia, "no-trivia", false, "omit whitespace and comments")

	return cmd
}
