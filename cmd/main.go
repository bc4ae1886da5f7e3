package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-fundamentals",
	Short: "A CLI for managing the stock fundamentals services",
	Long:  `Stock Fundamentals ingests raw market data, derives fundamental metrics and reports on data completeness...`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
