// Package cmd provides CLI commands for invoice.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/config"
	"github.com/hamon-in/invoice/pkg/db"
	"github.com/hamon-in/invoice/pkg/editor"
)

var (
	envFile   string
	dbFile    string
	outputDir string
	editorCmd string
	debug     bool

	cfg *config.Config

	// cleanups run before exitOnError terminates the process, since os.Exit
	// skips deferred calls.
	cleanups []func()
	osExit   = os.Exit
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices and timesheets",
	Long: `invoice keeps accounts, clients, templates, invoices and timesheets
in a local SQLite database and renders them as text or PDF documents.

Templates and document contents are written in your text editor.

Example:
  invoice init
  invoice account add --name "Hamon" --address "Calicut" --phone 123 --email a@b.in --bank-details "..."
  invoice client add --name Acme --address "..." --account Hamon
  invoice template add standard
  invoice invoice add --client Acme --template standard --subject "Consulting"
  invoice invoice generate 1 --format pdf`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(envFile)
		exitOnError(err, "failed to load configuration")
		loaded.Apply(config.Overrides{
			DBPath:    dbFile,
			OutputDir: outputDir,
			Editor:    editorCmd,
			Debug:     debug,
		})
		exitOnError(loaded.Validate(), "invalid configuration")
		cfg = loaded

		// Setup logging
		logLevel := slog.LevelInfo
		if cfg.Debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file (default is .env)")
	rootCmd.PersistentFlags().StringVarP(&dbFile, "file", "f", "", "database file (env INVOICE_DB)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "dir", "", "output directory for generated documents (env INVOICE_DIR)")
	rootCmd.PersistentFlags().StringVar(&editorCmd, "editor", "", "editor command (env INVOICE_EDITOR, EDITOR)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(timesheetCmd)
	rootCmd.AddCommand(tagCmd)
}

// openStore opens the configured database. The returned function closes it.
func openStore() (*db.Store, func()) {
	dbPath := cfg.Resolver().GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	return db.NewStore(conn), onExit(func() {
		if err := conn.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	})
}

// onExit registers f to run before an error exit and returns a function that
// runs it. f runs at most once whichever path gets there first.
func onExit(f func()) func() {
	var once sync.Once
	run := func() { once.Do(f) }
	cleanups = append(cleanups, run)
	return run
}

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func newEditor() *editor.Editor {
	return editor.New(cfg.Editor)
}

// parseDate parses a YYYY-MM-DD flag value; an empty value means today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(db.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// dateRange parses --from/--to, defaulting to the current month.
func dateRange(from, to string) (time.Time, time.Time, error) {
	today, _ := parseDate("")
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var err error
	if from != "" {
		if start, err = parseDate(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if end, err = parseDate(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("--to is before --from")
	}
	return start, end, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// readInput returns the contents of path, or "" when no path was given.
func readInput(path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		runCleanups()
		osExit(1)
	}
}

// parseOptionalDate parses a date flag where empty means unbounded.
func parseOptionalDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := parseDate(value)
	exitOnError(err, "invalid date")
	return t
}
