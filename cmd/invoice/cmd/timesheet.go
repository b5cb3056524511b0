package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
	"github.com/hamon-in/invoice/pkg/document"
	"github.com/hamon-in/invoice/pkg/editor"
	"github.com/hamon-in/invoice/pkg/render"
)

var (
	timesheetClient      string
	timesheetTemplate    string
	timesheetDate        string
	timesheetEmployee    string
	timesheetDescription string
	timesheetInput       string
	timesheetFrom        string
	timesheetTo          string
)

// timesheetCmd groups the timesheet commands.
var timesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Manage and generate timesheets",
}

var timesheetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a timesheet",
	Long: `Add a timesheet. The editor opens with every weekday of the month of
--date at zero hours, one "YYYY-MM-DD | hours" line per day.

Example:
  invoice timesheet add --client Acme --template standard --employee "A. Person" \
    --description "January support" --date 2024-01-31`,
	Args: cobra.NoArgs,
	Run:  runTimesheetAdd,
}

var timesheetEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a timesheet",
	Args:  cobra.ExactArgs(1),
	Run:   runTimesheetEdit,
}

var timesheetRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a timesheet",
	Args:  cobra.ExactArgs(1),
	Run:   runTimesheetRm,
}

var timesheetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List timesheets",
	Args:  cobra.NoArgs,
	Run:   runTimesheetList,
}

var timesheetGenerateCmd = &cobra.Command{
	Use:   "generate [ID...]",
	Short: "Render timesheets to text or PDF",
	Long: `Render timesheets by id, or every timesheet of a client within a date
range (the current month unless --from/--to are given).

Example:
  invoice timesheet generate 2 --format pdf
  invoice timesheet generate --client Acme --from 2024-01-01 --to 2024-01-31`,
	Run: runTimesheetGenerate,
}

func init() {
	for _, c := range []*cobra.Command{timesheetAddCmd, timesheetEditCmd} {
		f := c.Flags()
		f.StringVar(&timesheetClient, "client", "", "client name")
		f.StringVar(&timesheetTemplate, "template", "", "template name (letterhead source)")
		f.StringVar(&timesheetDate, "date", "", "timesheet date YYYY-MM-DD (default today)")
		f.StringVar(&timesheetEmployee, "employee", "", "employee name")
		f.StringVar(&timesheetDescription, "description", "", "work description")
		f.StringVar(&timesheetInput, "input", "", "read the hours from a file instead of the editor")
	}
	timesheetAddCmd.MarkFlagRequired("client")
	timesheetAddCmd.MarkFlagRequired("template")
	timesheetAddCmd.MarkFlagRequired("employee")

	for _, c := range []*cobra.Command{timesheetListCmd, timesheetGenerateCmd} {
		f := c.Flags()
		f.StringVar(&timesheetClient, "client", "", "only timesheets of this client")
		f.StringVar(&timesheetFrom, "from", "", "start date YYYY-MM-DD")
		f.StringVar(&timesheetTo, "to", "", "end date YYYY-MM-DD")
	}
	addGenerateFlags(timesheetGenerateCmd)

	timesheetCmd.AddCommand(timesheetAddCmd)
	timesheetCmd.AddCommand(timesheetEditCmd)
	timesheetCmd.AddCommand(timesheetRmCmd)
	timesheetCmd.AddCommand(timesheetListCmd)
	timesheetCmd.AddCommand(timesheetGenerateCmd)
}

func runTimesheetAdd(cmd *cobra.Command, args []string) {
	date, err := parseDate(timesheetDate)
	exitOnError(err, "invalid date")

	store, closeStore := openStore()
	defer closeStore()

	client, err := store.GetClientByName(timesheetClient)
	exitOnError(err, "failed to find client")
	tmpl, err := store.GetTemplateByName(timesheetTemplate)
	exitOnError(err, "failed to find template")

	skeleton, err := document.TimesheetSkeleton(date)
	exitOnError(err, "failed to prepare timesheet")

	id, err := store.AddTimesheet(db.Timesheet{
		Date:        date,
		Employee:    timesheetEmployee,
		Description: timesheetDescription,
		Hours:       timesheetHours(cmd, skeleton),
		ClientID:    client.ID,
		TemplateID:  tmpl.ID,
	})
	exitOnError(err, "failed to add timesheet")

	slog.Info("Timesheet added", "id", id)
	success("Added timesheet %d", id)
}

func runTimesheetEdit(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	exitOnError(err, "invalid timesheet id")

	store, closeStore := openStore()
	defer closeStore()

	ts, err := store.GetTimesheet(id)
	exitOnError(err, "failed to find timesheet")

	flags := cmd.Flags()
	if flags.Changed("client") {
		client, err := store.GetClientByName(timesheetClient)
		exitOnError(err, "failed to find client")
		ts.ClientID = client.ID
	}
	if flags.Changed("template") {
		tmpl, err := store.GetTemplateByName(timesheetTemplate)
		exitOnError(err, "failed to find template")
		ts.TemplateID = tmpl.ID
	}
	if flags.Changed("date") {
		ts.Date, err = parseDate(timesheetDate)
		exitOnError(err, "invalid date")
	}
	if flags.Changed("employee") {
		ts.Employee = timesheetEmployee
	}
	if flags.Changed("description") {
		ts.Description = timesheetDescription
	}
	ts.Hours = timesheetHours(cmd, document.FormatTimesheetContent(ts.Hours))

	exitOnError(store.UpdateTimesheet(*ts), "failed to update timesheet")
	success("Updated timesheet %d", ts.ID)
}

// timesheetHours reads the hours from --input, or from the editor starting at initial.
func timesheetHours(cmd *cobra.Command, initial string) map[string]decimal.Decimal {
	text, ok, err := readInput(timesheetInput)
	exitOnError(err, "failed to read timesheet content")
	if ok {
		hours, err := document.ParseTimesheetContent(text)
		exitOnError(err, "invalid timesheet content")
		return hours
	}

	hours, _, err := editor.EditValid(cmd.Context(), newEditor(), initial, ".txt", document.ParseTimesheetContent)
	exitOnError(err, "failed to edit timesheet")
	return hours
}

func runTimesheetRm(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	exitOnError(err, "invalid timesheet id")

	store, closeStore := openStore()
	defer closeStore()

	exitOnError(store.DeleteTimesheet(id), "failed to delete timesheet")
	success("Deleted timesheet %d", id)
}

func runTimesheetList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	sheets := listTimesheets(store, false)

	var rows [][]string
	for _, ts := range sheets {
		total := decimal.Zero
		for _, h := range ts.Hours {
			total = total.Add(h)
		}
		rows = append(rows, []string{
			strconv.FormatInt(ts.ID, 10),
			ts.Date.Format(db.DateLayout),
			ts.ClientName,
			ts.Employee,
			ts.Description,
			total.StringFixedBank(2),
		})
	}
	printTable([]string{"ID", "Date", "Client", "Employee", "Description", "Hours"}, rows)
}

// listTimesheets applies the --client/--from/--to flags. With defaultMonth
// an unset range means the current month, otherwise all dates.
func listTimesheets(store *db.Store, defaultMonth bool) []db.Timesheet {
	var clientID int64
	if timesheetClient != "" {
		client, err := store.GetClientByName(timesheetClient)
		exitOnError(err, "failed to find client")
		clientID = client.ID
	}

	start, end := parseOptionalDate(timesheetFrom), parseOptionalDate(timesheetTo)
	if defaultMonth {
		var err error
		start, end, err = dateRange(timesheetFrom, timesheetTo)
		exitOnError(err, "invalid date range")
	}

	sheets, err := store.ListTimesheets(clientID, start, end)
	exitOnError(err, "failed to list timesheets")
	return sheets
}

func runTimesheetGenerate(cmd *cobra.Command, args []string) {
	renderer, err := render.New(generateFormat())
	exitOnError(err, "invalid format")

	store, closeStore := openStore()
	defer closeStore()

	var ids []int64
	for _, arg := range args {
		id, err := parseID(arg)
		exitOnError(err, "invalid timesheet id")
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		if timesheetClient == "" {
			exitOnError(fmt.Errorf("give timesheet ids or --client"), "nothing to generate")
		}
		for _, ts := range listTimesheets(store, true) {
			ids = append(ids, ts.ID)
		}
	}

	gen := render.NewGenerator(cfg.Resolver())
	opts := render.Options{Stdout: genStdout, Overwrite: genOverwrite}
	for _, id := range ids {
		detail, err := store.GetTimesheetDetail(id)
		exitOnError(err, "failed to load timesheet")
		ts, err := document.PrepareTimesheet(detail)
		exitOnError(err, fmt.Sprintf("failed to prepare timesheet %d", id))

		dest, err := gen.Timesheet(renderer, ts, opts)
		exitOnError(err, fmt.Sprintf("failed to generate timesheet %d", id))
		slog.Info("Timesheet generated", "id", id, "destination", dest.String())
		if !dest.Stdout {
			success("Generated timesheet %d: %s", id, dest)
		}
	}
}
