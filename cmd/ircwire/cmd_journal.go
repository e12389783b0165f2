package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/ircwire/internal/state"
	"github.com/user/ircwire/internal/types"
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalTailCmd, journalClearCmd)

	journalTailCmd.Flags().Int("limit", 20, "number of entries to show")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect journaled connection events",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		journal := state.NewJournal(cfg.DataDir)

		connsDir := filepath.Join(cfg.DataDir, "connections")
		dirs, err := os.ReadDir(connsDir)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No journaled connections.")
				return nil
			}
			return fmt.Errorf("read connections directory: %w", err)
		}

		if len(dirs) == 0 {
			fmt.Println("No journaled connections.")
			return nil
		}

		ctx := context.Background()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CONNECTION\tEVENTS")
		for _, dir := range dirs {
			if !dir.IsDir() {
				continue
			}
			connID := types.ConnID(dir.Name())
			count, err := journal.Count(ctx, connID)
			if err != nil {
				count = 0
			}
			fmt.Fprintf(w, "%s\t%d\n", connID, count)
		}
		return w.Flush()
	},
}

var journalTailCmd = &cobra.Command{
	Use:   "tail <conn-id>",
	Short: "Show the last events for a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg := loadConfig()
		journal := state.NewJournal(cfg.DataDir)

		entries, err := journal.Tail(context.Background(), types.ConnID(args[0]), limit)
		if err != nil {
			return fmt.Errorf("tail journal: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No events for that connection.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tAT\tKIND\tPAYLOAD")
		for _, entry := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				entry.Seq,
				entry.At.Format("2006-01-02 15:04:05"),
				entry.Kind,
				string(entry.Payload),
			)
		}
		return w.Flush()
	},
}

var journalClearCmd = &cobra.Command{
	Use:   "clear <conn-id|all>",
	Short: "Clear one connection's journal or all of them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		connsDir := filepath.Join(cfg.DataDir, "connections")

		if args[0] == "all" {
			if err := os.RemoveAll(connsDir); err != nil {
				return fmt.Errorf("remove connections directory: %w", err)
			}
			fmt.Println("All journals cleared.")
			return nil
		}

		// Remove specific connection directory (validate path to prevent traversal)
		connDir := filepath.Join(connsDir, args[0])
		resolved, err := filepath.Abs(connDir)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		absConnsDir, _ := filepath.Abs(connsDir)
		if !strings.HasPrefix(resolved, absConnsDir+string(filepath.Separator)) {
			return fmt.Errorf("invalid connection ID: %s", args[0])
		}
		if _, err := os.Stat(connDir); os.IsNotExist(err) {
			return fmt.Errorf("connection not found: %s", args[0])
		}
		if err := os.RemoveAll(connDir); err != nil {
			return fmt.Errorf("remove connection directory: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Journal for %s cleared.\n", args[0])
		return nil
	},
}
