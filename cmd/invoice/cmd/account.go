package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
)

var newAccount db.Account

// accountCmd groups the account commands.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the accounts invoices are issued from",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	Long: `Add the company that issues invoices. Addresses and bank details may
contain literal \n sequences for line breaks.

Example:
  invoice account add --name Hamon --address "1 Main St\nCalicut" \
    --phone "+91 1234" --email billing@hamon.in --bank-details "Bank: X\nIFSC: Y" --prefix HT`,
	Args: cobra.NoArgs,
	Run:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	Run:   runAccountList,
}

func init() {
	f := accountAddCmd.Flags()
	f.StringVar(&newAccount.Name, "name", "", "account name (required)")
	f.StringVar(&newAccount.Address, "address", "", "postal address (required)")
	f.StringVar(&newAccount.Phone, "phone", "", "phone number (required)")
	f.StringVar(&newAccount.Email, "email", "", "email address (required)")
	f.StringVar(&newAccount.PAN, "pan", "", "PAN")
	f.StringVar(&newAccount.ServiceTaxNumber, "service-tax", "", "service tax registration number")
	f.StringVar(&newAccount.BankDetails, "bank-details", "", "payment details printed on invoices (required)")
	f.StringVar(&newAccount.Prefix, "prefix", "", "invoice number prefix")

	accountAddCmd.MarkFlagRequired("name")
	accountAddCmd.MarkFlagRequired("address")
	accountAddCmd.MarkFlagRequired("phone")
	accountAddCmd.MarkFlagRequired("email")
	accountAddCmd.MarkFlagRequired("bank-details")

	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
}

func runAccountAdd(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	id, err := store.AddAccount(newAccount)
	exitOnError(err, "failed to add account")
	success("Added account %q (id %d)", newAccount.Name, id)
}

func runAccountList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	accounts, err := store.ListAccounts()
	exitOnError(err, "failed to list accounts")

	var rows [][]string
	for _, a := range accounts {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10), a.Name, oneLine(a.Address), a.Phone, a.Email, a.Prefix,
		})
	}
	printTable([]string{"ID", "Name", "Address", "Phone", "Email", "Prefix"}, rows)
}
