// Package main is the entry point for the invoice CLI.
package main

import (
	"os"

	"github.com/hamon-in/invoice/cmd/invoice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
