package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
