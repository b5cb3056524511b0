package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
)

var (
	newClient     db.Client
	clientAccount string
)

// clientCmd groups the client commands.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client billed under an account",
	Long: `Add a client. The account is looked up by name.

Example:
  invoice client add --name Acme --address "42 Road\nBangalore" --contact "Jane" --account Hamon`,
	Args: cobra.NoArgs,
	Run:  runClientAdd,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	Run:   runClientList,
}

func init() {
	f := clientAddCmd.Flags()
	f.StringVar(&newClient.Name, "name", "", "client name (required)")
	f.StringVar(&newClient.Address, "address", "", "billing address (required)")
	f.StringVar(&newClient.Contact, "contact", "", "contact person")
	f.StringVar(&clientAccount, "account", "", "account name (required)")

	clientAddCmd.MarkFlagRequired("name")
	clientAddCmd.MarkFlagRequired("address")
	clientAddCmd.MarkFlagRequired("account")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
}

func runClientAdd(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	account, err := store.GetAccountByName(clientAccount)
	exitOnError(err, "failed to find account")

	newClient.AccountID = account.ID
	id, err := store.AddClient(newClient)
	exitOnError(err, "failed to add client")
	success("Added client %q (id %d)", newClient.Name, id)
}

func runClientList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	clients, err := store.ListClients()
	exitOnError(err, "failed to list clients")

	var rows [][]string
	for _, c := range clients {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10), c.Name, oneLine(c.Address), c.Contact, c.AccountName,
		})
	}
	printTable([]string{"ID", "Name", "Address", "Contact", "Account"}, rows)
}
