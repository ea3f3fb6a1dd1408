package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/combine/combinator"
	"github.com/dhamidi/combine/format"
)

var csvLog = commonlog.GetLogger("combine.csv")

func newCSVCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "csv [file]",
		Short: "Parse CSV from a file or stdin and dump the parse tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			name := "stdin"
			if len(args) == 1 {
				name = args[0]
				data, err = os.ReadFile(name)
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			csvLog.Debugf("parsing %d bytes from %s", len(data), name)

			v, err := combinator.Parse(name, string(data), csvGrammar())
			if err != nil {
				return err
			}
			node, err := v.Node()
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "sexpr":
				encoder = format.NewSexprEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, sexpr)")

	return cmd
}

// csvGrammar parses comma-separated records into a tagged tree:
// quoted or bare fields, records separated by newlines, no trailing
// separator required.
func csvGrammar() *combinator.Parser {
	quoted := combinator.StringLit()
	bare := combinator.Many(combinator.Concat, combinator.NoneOf(",\"\r\n"))
	field := combinator.Tag(combinator.Or(quoted, bare), "field")

	record := combinator.Tag(
		combinator.SepBy1(combinator.Gather, field, combinator.Char(',')),
		"record")

	newline := combinator.Or(combinator.String("\r\n"), combinator.String("\n"))
	file := combinator.Tag(
		combinator.SepBy(combinator.Gather, record, newline),
		"csv")

	return combinator.Root(file)
}
