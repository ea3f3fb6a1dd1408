package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/combine/combinator"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <grammar>",
		Short: "Print the parser tree of a built-in grammar (calc, csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *combinator.Parser
			switch args[0] {
			case "calc":
				p = calcGrammar()
			case "csv":
				p = csvGrammar()
			default:
				return fmt.Errorf("unknown grammar: %s", args[0])
			}
			fmt.Println(p.String())
			return nil
		},
	}
}
