package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "saanbot",
	Short: "Conversational assistant for SAAN Protocol Experts",
	Long: `SAANBOT answers customer questions about SAAN Protocol Experts using
the company knowledge base, keeps short per-session conversation
context, and captures sales leads from contact details shared in chat.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; environment variables win either way.
		godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".saanbot.yml", "config file path")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
