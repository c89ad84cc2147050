package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/syncd/cmd/syncd"
	"github.com/arthur-debert/syncd/pkg/style"
)

func main() {
	rootCmd := syncd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
