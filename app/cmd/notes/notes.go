package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/onelastai/memory-notes/business/v1/note"
	"github.com/onelastai/memory-notes/platform/resources"
	"github.com/onelastai/memory-notes/sys"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command groups the commands working on the configured note store
func Command() *cobra.Command {
	var closeResources func()
	release := func() {
		if closeResources != nil {
			closeResources()
			closeResources = nil
		}
		sys.R.Notes = nil
		sys.R.Bucket = nil
		sys.R.Cache = nil
		sys.R.Database = nil
	}

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Add, list, search and delete notes in the configured snapshot backend",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// a previous failed run skips the post run hook
			release()

			zl, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
			if err != nil {
				return err
			}
			log := zl.Sugar()
			resources.LoadConfigs(log)
			closeResources, err = resources.Open(cmd.Context(), log)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			release()
		},
	}

	cmd.AddCommand(addCommand(), listCommand(), searchCommand(), deleteCommand(), statsCommand(), whoamiCommand())
	return cmd
}

func addCommand() *cobra.Command {
	var newN note.NewNote
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Store a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newN.Content = strings.Join(args, " ")
			created, err := sys.R.Notes.Add(ctx(cmd), newN)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	cmd.Flags().StringVar(&newN.Category, "category", "", "explicit category, inferred when empty")
	cmd.Flags().IntVar(&newN.Importance, "importance", 0, "importance in [1,5], random when 0")
	return cmd
}

func listCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, sys.R.Notes.List(limit))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "max notes, 0 for all")
	return cmd
}

func searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by content, tag or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, sys.R.Notes.Search(strings.Join(args, " ")))
		},
	}
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			deleted, err := sys.R.Notes.Delete(ctx(cmd), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"id": id, "deleted": deleted})
		},
	}
}

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, sys.R.Notes.Stats(time.Now()))
		},
	}
}

func whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami [name]",
		Short: "Show or set the owner name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := sys.R.Notes.SetOwnerName(ctx(cmd), args[0]); err != nil {
					return err
				}
			}
			return printJSON(cmd, note.Profile{Name: sys.R.Notes.OwnerName()})
		},
	}
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
