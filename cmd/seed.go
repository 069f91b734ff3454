package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saanpro/saanbot/internal/config"
	"github.com/saanpro/saanbot/internal/db"
	"github.com/saanpro/saanbot/internal/knowledge"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load knowledge collections from a YAML file",
	Long:  `Replaces the knowledge base collections with the contents of a YAML seed file. Collections absent from the file are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		database, err := db.Open(filepath.Join(cfg.DataDir, "saanbot.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := knowledge.NewStore(database)
		counts, err := knowledge.SeedFromFile(context.Background(), store, seedFile)
		if err != nil {
			return fmt.Errorf("seeding knowledge: %w", err)
		}

		for _, name := range knowledge.Collections {
			if n, ok := counts[name]; ok {
				fmt.Printf("  %s: %d records\n", name, n)
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "knowledge.yml", "YAML seed file path")
	rootCmd.AddCommand(seedCmd)
}
