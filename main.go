// ABOUTME: Entry point for the bookreader-admin console
// ABOUTME: Terminal UI and scripting commands for platform administration

package main

import (
	"fmt"
	"os"

	"github.com/Abdooo2235/bookreader-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
