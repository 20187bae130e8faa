package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	wait bool
)

var rootCmd = &cobra.Command{
	Use:   "club-stats-cli",
	Short: "A CLI to interact with the club-stats server",
	Long: `A command-line interface for querying the statistics endpoints
of the club-stats server and triggering its maintenance jobs.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&wait, "wait", false, "Wait for computed statistics instead of placeholders")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
