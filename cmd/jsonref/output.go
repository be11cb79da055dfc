package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// errorColor renders error messages in red when stderr is a terminal.
var errorColor = color.New(color.FgRed)

func printError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
