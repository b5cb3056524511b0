package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printTable renders rows under header; plain tab-separated output when stdout is not a terminal.
func printTable(header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("(none)")
		return
	}
	if !isTerminal() {
		fmt.Println(strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	}

	data := append(pterm.TableData{header}, rows...)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		exitOnError(err, "failed to print table")
	}
}

func success(format string, args ...interface{}) {
	if !isTerminal() {
		fmt.Printf(format+"\n", args...)
		return
	}
	pterm.Success.Printfln(format, args...)
}

// oneLine flattens a multi-line value for table cells.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, `\n`, ", ")
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", ", ")), " ")
}
