// Command molstack coding=utf-8
// @Project : molstack
// @File    : main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "molstack",
		Short: "Run and inspect molecular-structure composition workflows",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newResumeCommand())
	root.AddCommand(newValidateCommand())
	return root
}
