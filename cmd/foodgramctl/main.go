// Command foodgramctl is the operator CLI: schema migration, dev tokens
// and printing a user's shopping list.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/database"
)

var (
	// databaseURL overrides DATABASE_URL when set by --database.
	databaseURL string

	cfg *config.Config
	db  *gorm.DB
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodgramctl",
	Short: "Foodgram maintenance tool",
	Long: `foodgramctl runs maintenance tasks against the Foodgram database
using the same configuration as the API server (environment or .env).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeDB()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", "", "database DSN (default: $DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(shopListCmd)
}

// setup loads config and opens the database.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	db, err = database.Connect(cfg.DatabaseURL, database.Options{Silent: true})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func closeDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
