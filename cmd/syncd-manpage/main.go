package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/syncd/cmd/syncd"
	"github.com/arthur-debert/syncd/internal/version"
)

func main() {
	rootCmd := syncd.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SYNCD",
		Section: "1",
		Source:  "syncd " + version.Version,
		Manual:  "syncd manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
