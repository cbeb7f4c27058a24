package main

import (
	"context"
	"os"

	"github.com/onelastai/memory-notes/app/cmd/notes"
	"github.com/onelastai/memory-notes/app/cmd/schema"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "notesctl",
		Short:        "Admin tool for the memory notes service",
		SilenceUsage: true,
	}
	root.AddCommand(schema.Command(), notes.Command())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
