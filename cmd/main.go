package main

import (
	"fmt"
	"os"

	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insta-event-calendar",
	Short: "Turns Instagram posts of student organizations into calendar files.",
	Long: `insta-event-calendar acquires the profiles and recent posts of the configured organizations,
extracts the events they announce through a chat completion service and keeps one
deduplicated ICS calendar per organization.

Configuration is read from environment variables.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}
