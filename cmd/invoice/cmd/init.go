package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and output directory",
	Long: `Create the SQLite database (with its schema) and the output directory.
Running init on an existing database only checks its version.

Example:
  invoice init
  invoice init -f ./invoices.db --dir ./out`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	resolver := cfg.Resolver()

	_, closeStore := openStore()
	defer closeStore()

	exitOnError(resolver.EnsureDir(resolver.GetOutputDir()), "failed to create output directory")

	slog.Info("Initialized", "database", resolver.GetDatabasePath(), "output", resolver.GetOutputDir())
	fmt.Printf("Database:         %s\n", resolver.GetDatabasePath())
	fmt.Printf("Output directory: %s\n", resolver.GetOutputDir())
}
