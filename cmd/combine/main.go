package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "combine",
		Short: "Run the built-in combinator grammars against text",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newCSVCmd())
	rootCmd.AddCommand(newTreeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
