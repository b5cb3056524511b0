package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
	"github.com/hamon-in/invoice/pkg/document"
	"github.com/hamon-in/invoice/pkg/editor"
	"github.com/hamon-in/invoice/pkg/render"
)

var (
	invoiceClient   string
	invoiceTemplate string
	invoiceDate     string
	invoiceSubject  string
	invoiceTags     []string
	invoiceInput    string

	invoiceFrom string
	invoiceTo   string
	invoiceTag  string
)

// generate flags shared by invoice and timesheet generation
var (
	genFormat    string
	genStdout    bool
	genOverwrite bool
)

// invoiceCmd groups the invoice commands.
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage and generate invoices",
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an invoice",
	Long: `Add an invoice for a client. Line items are written in your editor,
one per line with columns separated by '|'; the last column is the amount.
Invalid content reopens the editor once with the error shown at the top.

Example:
  invoice invoice add --client Acme --template standard --subject "Consulting" --date 2024-01-02
  invoice invoice add --client Acme --template standard --subject "Support" --tags pending --input items.txt`,
	Args: cobra.NoArgs,
	Run:  runInvoiceAdd,
}

var invoiceEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit an invoice",
	Long: `Edit the line items of an invoice in your editor. Flags replace the
corresponding fields; --tags replaces the whole tag list.`,
	Args: cobra.ExactArgs(1),
	Run:  runInvoiceEdit,
}

var invoiceRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	Run:   runInvoiceRm,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Args:  cobra.NoArgs,
	Run:   runInvoiceList,
}

var invoiceGenerateCmd = &cobra.Command{
	Use:   "generate [ID...]",
	Short: "Render invoices to text or PDF",
	Long: `Render invoices by id, or every invoice of a client within a date range
(the current month unless --from/--to are given).

Files are written to the output directory. An existing file is never
replaced unless --overwrite is given; "_(1)", "_(2)", ... is appended instead.

Example:
  invoice invoice generate 3 4 --format pdf
  invoice invoice generate --client Acme --from 2024-01-01 --to 2024-03-31
  invoice invoice generate 3 --stdout`,
	Run: runInvoiceGenerate,
}

func init() {
	f := invoiceAddCmd.Flags()
	f.StringVar(&invoiceClient, "client", "", "client name (required)")
	f.StringVar(&invoiceTemplate, "template", "", "template name (required)")
	f.StringVar(&invoiceDate, "date", "", "invoice date YYYY-MM-DD (default today)")
	f.StringVar(&invoiceSubject, "subject", "", "invoice subject (required)")
	f.StringSliceVar(&invoiceTags, "tags", nil, "comma separated tags")
	f.StringVar(&invoiceInput, "input", "", "read the line items from a file instead of the editor")
	invoiceAddCmd.MarkFlagRequired("client")
	invoiceAddCmd.MarkFlagRequired("template")
	invoiceAddCmd.MarkFlagRequired("subject")

	f = invoiceEditCmd.Flags()
	f.StringVar(&invoiceClient, "client", "", "client name")
	f.StringVar(&invoiceTemplate, "template", "", "template name")
	f.StringVar(&invoiceDate, "date", "", "invoice date YYYY-MM-DD")
	f.StringVar(&invoiceSubject, "subject", "", "invoice subject")
	f.StringSliceVar(&invoiceTags, "tags", nil, "comma separated tags")
	f.StringVar(&invoiceInput, "input", "", "read the line items from a file instead of the editor")

	f = invoiceListCmd.Flags()
	f.StringVar(&invoiceClient, "client", "", "only invoices of this client")
	f.StringVar(&invoiceFrom, "from", "", "start date YYYY-MM-DD")
	f.StringVar(&invoiceTo, "to", "", "end date YYYY-MM-DD")
	f.StringVar(&invoiceTag, "tag", "", "only invoices with this tag")

	f = invoiceGenerateCmd.Flags()
	f.StringVar(&invoiceClient, "client", "", "generate every invoice of this client in the date range")
	f.StringVar(&invoiceFrom, "from", "", "start date YYYY-MM-DD (default start of this month)")
	f.StringVar(&invoiceTo, "to", "", "end date YYYY-MM-DD (default end of this month)")
	f.StringVar(&invoiceTag, "tag", "", "only invoices with this tag")
	addGenerateFlags(invoiceGenerateCmd)

	invoiceCmd.AddCommand(invoiceAddCmd)
	invoiceCmd.AddCommand(invoiceEditCmd)
	invoiceCmd.AddCommand(invoiceRmCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceGenerateCmd)
}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringVar(&genFormat, "format", "", fmt.Sprintf("output format: %s (env INVOICE_FORMAT)", strings.Join(render.Formats(), ", ")))
	c.Flags().BoolVar(&genStdout, "stdout", false, "print text output instead of writing files")
	c.Flags().BoolVar(&genOverwrite, "overwrite", false, "replace existing files")
}

func runInvoiceAdd(cmd *cobra.Command, args []string) {
	date, err := parseDate(invoiceDate)
	exitOnError(err, "invalid date")

	store, closeStore := openStore()
	defer closeStore()

	client, err := store.GetClientByName(invoiceClient)
	exitOnError(err, "failed to find client")
	tmpl, err := store.GetTemplateByName(invoiceTemplate)
	exitOnError(err, "failed to find template")
	parsed, err := document.ParseTemplate(tmpl.Content)
	exitOnError(err, "invalid template")

	content := invoiceContent(cmd, document.InvoiceSkeleton(parsed))

	inv, err := store.AddInvoice(db.Invoice{
		Date:        date,
		Particulars: invoiceSubject,
		Content:     content,
		ClientID:    client.ID,
		TemplateID:  tmpl.ID,
		Tags:        invoiceTags,
	})
	exitOnError(err, "failed to add invoice")

	slog.Info("Invoice added", "id", inv.ID, "number", inv.DisplayNumber)
	success("Added invoice #%d (id %d)", inv.DisplayNumber, inv.ID)
}

func runInvoiceEdit(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	exitOnError(err, "invalid invoice id")

	store, closeStore := openStore()
	defer closeStore()

	inv, err := store.GetInvoice(id)
	exitOnError(err, "failed to find invoice")

	flags := cmd.Flags()
	if flags.Changed("client") {
		client, err := store.GetClientByName(invoiceClient)
		exitOnError(err, "failed to find client")
		inv.ClientID = client.ID
	}
	if flags.Changed("template") {
		tmpl, err := store.GetTemplateByName(invoiceTemplate)
		exitOnError(err, "failed to find template")
		inv.TemplateID = tmpl.ID
	}
	if flags.Changed("date") {
		inv.Date, err = parseDate(invoiceDate)
		exitOnError(err, "invalid date")
	}
	if flags.Changed("subject") {
		inv.Particulars = invoiceSubject
	}
	if flags.Changed("tags") {
		inv.Tags = invoiceTags
	}
	inv.Content = invoiceContent(cmd, inv.Content)

	exitOnError(store.UpdateInvoice(*inv), "failed to update invoice")
	success("Updated invoice #%d", inv.DisplayNumber)
}

// invoiceContent reads the line items from --input, or from the editor starting at initial.
func invoiceContent(cmd *cobra.Command, initial string) string {
	text, ok, err := readInput(invoiceInput)
	exitOnError(err, "failed to read invoice content")
	if ok {
		_, err := document.ParseInvoiceContent(text)
		exitOnError(err, "invalid invoice content")
		return text
	}

	_, text, err = editor.EditValid(cmd.Context(), newEditor(), initial, ".txt", document.ParseInvoiceContent)
	exitOnError(err, "failed to edit invoice")
	return text
}

func runInvoiceRm(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	exitOnError(err, "invalid invoice id")

	store, closeStore := openStore()
	defer closeStore()

	exitOnError(store.DeleteInvoice(id), "failed to delete invoice")
	success("Deleted invoice %d", id)
}

func runInvoiceList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	filter := db.InvoiceFilter{Tag: invoiceTag}
	if invoiceClient != "" {
		client, err := store.GetClientByName(invoiceClient)
		exitOnError(err, "failed to find client")
		filter.ClientID = client.ID
	}
	filter.From = parseOptionalDate(invoiceFrom)
	filter.To = parseOptionalDate(invoiceTo)

	invoices, err := store.ListInvoices(filter)
	exitOnError(err, "failed to list invoices")

	var rows [][]string
	for _, inv := range invoices {
		rows = append(rows, []string{
			strconv.FormatInt(inv.ID, 10),
			strconv.FormatInt(inv.DisplayNumber, 10),
			inv.Date.Format(db.DateLayout),
			inv.ClientName,
			inv.Particulars,
			inv.TemplateName,
			strings.Join(inv.Tags, ","),
		})
	}
	printTable([]string{"ID", "Number", "Date", "Client", "Subject", "Template", "Tags"}, rows)
}

func runInvoiceGenerate(cmd *cobra.Command, args []string) {
	renderer, err := render.New(generateFormat())
	exitOnError(err, "invalid format")

	store, closeStore := openStore()
	defer closeStore()

	ids := invoiceIDs(store, args)
	gen := render.NewGenerator(cfg.Resolver())
	opts := render.Options{Stdout: genStdout, Overwrite: genOverwrite}

	for _, id := range ids {
		detail, err := store.GetInvoiceDetail(id)
		exitOnError(err, "failed to load invoice")
		inv, err := document.PrepareInvoice(detail)
		exitOnError(err, fmt.Sprintf("failed to prepare invoice %d", id))

		dest, err := gen.Invoice(renderer, inv, opts)
		exitOnError(err, fmt.Sprintf("failed to generate invoice %d", id))
		slog.Info("Invoice generated", "id", id, "number", inv.Number, "destination", dest.String())
		if !dest.Stdout {
			success("Generated invoice %s: %s", inv.Number, dest)
		}
	}
}

// invoiceIDs resolves the invoices to generate from ids or the client/date range flags.
func invoiceIDs(store *db.Store, args []string) []int64 {
	var ids []int64
	for _, arg := range args {
		id, err := parseID(arg)
		exitOnError(err, "invalid invoice id")
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		return ids
	}

	if invoiceClient == "" {
		exitOnError(fmt.Errorf("give invoice ids or --client"), "nothing to generate")
	}
	client, err := store.GetClientByName(invoiceClient)
	exitOnError(err, "failed to find client")
	from, to, err := dateRange(invoiceFrom, invoiceTo)
	exitOnError(err, "invalid date range")

	invoices, err := store.ListInvoices(db.InvoiceFilter{ClientID: client.ID, From: from, To: to, Tag: invoiceTag})
	exitOnError(err, "failed to list invoices")
	if len(invoices) == 0 {
		slog.Warn("No invoices in range", "client", client.Name,
			"from", from.Format(db.DateLayout), "to", to.Format(db.DateLayout))
	}
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	return ids
}

func generateFormat() string {
	if genFormat != "" {
		return genFormat
	}
	return cfg.Format
}
