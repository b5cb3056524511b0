package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
)

var tagDescription string

// tagCmd groups the tag commands.
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage invoice tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a tag",
	Long: `Add a tag that can be attached to invoices with --tags.

Example:
  invoice tag add paid --description "Payment received"`,
	Args: cobra.ExactArgs(1),
	Run:  runTagAdd,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with the number of tagged invoices",
	Args:  cobra.NoArgs,
	Run:   runTagList,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a tag and detach it from every invoice",
	Args:  cobra.ExactArgs(1),
	Run:   runTagRm,
}

func init() {
	tagAddCmd.Flags().StringVar(&tagDescription, "description", "", "tag description")

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRmCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	_, err := store.AddTag(db.Tag{Name: args[0], Description: tagDescription})
	exitOnError(err, "failed to add tag")
	success("Added tag %q", args[0])
}

func runTagList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	tags, err := store.ListTags()
	exitOnError(err, "failed to list tags")

	var rows [][]string
	for _, t := range tags {
		rows = append(rows, []string{t.Name, t.Description, strconv.Itoa(t.Invoices)})
	}
	printTable([]string{"Name", "Description", "Invoices"}, rows)
}

func runTagRm(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	exitOnError(store.DeleteTag(args[0]), "failed to delete tag")
	success("Deleted tag %q", args[0])
}
