package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clientgen",
	Short: "Generate API client library source from discovery documents",
	Long: `clientgen renders API discovery documents through language-specific
templates to produce client library source code: one data class per schema,
one request method per API operation.`,
}

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
}
