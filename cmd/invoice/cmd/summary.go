package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Display the number of stored entities",
	Long: `Display how many accounts, clients, templates, invoices, timesheets
and tags the database holds.

Example:
  invoice summary`,
	Args: cobra.NoArgs,
	Run:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	sum, err := store.GetSummary()
	exitOnError(err, "failed to get summary")

	printTable([]string{"Entity", "Count"}, [][]string{
		{"Accounts", strconv.Itoa(sum.Accounts)},
		{"Clients", strconv.Itoa(sum.Clients)},
		{"Templates", strconv.Itoa(sum.Templates)},
		{"Invoices", strconv.Itoa(sum.Invoices)},
		{"Timesheets", strconv.Itoa(sum.Timesheets)},
		{"Tags", strconv.Itoa(sum.Tags)},
	})
}
