package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamon-in/invoice/pkg/db"
	"github.com/hamon-in/invoice/pkg/document"
	"github.com/hamon-in/invoice/pkg/editor"
	"github.com/hamon-in/invoice/pkg/render"
)

var (
	templateDescription     string
	templateLetterhead      string
	templateClearLetterhead bool
	templateInput           string
)

// templateCmd groups the template commands.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage invoice and timesheet templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a template",
	Long: `Add a template. The template body (YAML with taxes, rows and footer)
is written in your editor, starting from an example. An invalid body
reopens the editor once with the error shown at the top.

A letterhead (PDF, PNG, JPEG or GIF) is drawn behind every page of PDF output.

Example:
  invoice template add standard --description "Domestic" --letterhead ./letterhead.pdf
  invoice template add standard --input ./standard.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runTemplateAdd,
}

var templateEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit a template body, description or letterhead",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateEdit,
}

var templateRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateRm,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  cobra.NoArgs,
	Run:   runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a template body",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateShow,
}

func init() {
	for _, c := range []*cobra.Command{templateAddCmd, templateEditCmd} {
		c.Flags().StringVar(&templateDescription, "description", "", "template description")
		c.Flags().StringVar(&templateLetterhead, "letterhead", "", "letterhead file (PDF, PNG, JPEG or GIF)")
		c.Flags().StringVar(&templateInput, "input", "", "read the body from a file instead of the editor")
	}
	templateEditCmd.Flags().BoolVar(&templateClearLetterhead, "clear-letterhead", false, "remove the letterhead")

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateEditCmd)
	templateCmd.AddCommand(templateRmCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
}

func runTemplateAdd(cmd *cobra.Command, args []string) {
	letterhead, err := readLetterhead(templateLetterhead)
	exitOnError(err, "failed to read letterhead")

	content := templateBody(cmd, document.TemplateSkeleton)

	store, closeStore := openStore()
	defer closeStore()

	id, err := store.AddTemplate(db.Template{
		Name:        args[0],
		Description: templateDescription,
		Content:     content,
		Letterhead:  letterhead,
	})
	exitOnError(err, "failed to add template")
	success("Added template %q (id %d)", args[0], id)
}

func runTemplateEdit(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	tmpl, err := store.GetTemplateByName(args[0])
	exitOnError(err, "failed to find template")

	if cmd.Flags().Changed("description") {
		tmpl.Description = templateDescription
	}
	switch {
	case templateClearLetterhead:
		tmpl.Letterhead = nil
	case templateLetterhead != "":
		tmpl.Letterhead, err = readLetterhead(templateLetterhead)
		exitOnError(err, "failed to read letterhead")
	}
	if templateInput != "" || !metadataOnly(cmd) {
		tmpl.Content = templateBody(cmd, tmpl.Content)
	}

	exitOnError(store.UpdateTemplate(*tmpl), "failed to update template")
	success("Updated template %q", tmpl.Name)
}

// metadataOnly reports whether the edit only touches the description or letterhead.
func metadataOnly(cmd *cobra.Command) bool {
	f := cmd.Flags()
	return f.Changed("description") || f.Changed("letterhead") || f.Changed("clear-letterhead")
}

// templateBody reads the template body from --input, or from the editor starting at initial.
func templateBody(cmd *cobra.Command, initial string) string {
	text, ok, err := readInput(templateInput)
	exitOnError(err, "failed to read template")
	var tmpl *document.Template
	if ok {
		tmpl, err = document.ParseTemplate(text)
		exitOnError(err, "invalid template")
	} else {
		tmpl, text, err = editor.EditValid(cmd.Context(), newEditor(), initial, ".yaml", document.ParseTemplate)
		exitOnError(err, "failed to edit template")
	}

	if runes := render.TemplateUnsupportedRunes(tmpl); len(runes) > 0 {
		slog.Warn("Template has characters PDF output cannot print; they will appear as '.'", "characters", string(runes))
	}
	return text
}

// readLetterhead loads and checks a letterhead file; an empty path means none.
func readLetterhead(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &render.LetterheadReadError{Err: err}
	}
	if len(data) == 0 {
		return nil, &render.LetterheadReadError{Err: fmt.Errorf("%s is empty", path)}
	}
	if err := render.CheckLetterhead(data); err != nil {
		return nil, err
	}
	return data, nil
}

func runTemplateRm(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	exitOnError(store.DeleteTemplate(args[0]), "failed to delete template")
	success("Deleted template %q", args[0])
}

func runTemplateList(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	templates, err := store.ListTemplates()
	exitOnError(err, "failed to list templates")

	var rows [][]string
	for _, t := range templates {
		letterhead := "no"
		if len(t.Letterhead) > 0 {
			letterhead = "yes"
		}
		rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Name, t.Description, letterhead})
	}
	printTable([]string{"ID", "Name", "Description", "Letterhead"}, rows)
}

func runTemplateShow(cmd *cobra.Command, args []string) {
	store, closeStore := openStore()
	defer closeStore()

	tmpl, err := store.GetTemplateByName(args[0])
	exitOnError(err, "failed to find template")
	fmt.Print(tmpl.Content)
}
