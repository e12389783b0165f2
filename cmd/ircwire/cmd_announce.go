package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/ircwire/internal/state"
)

func init() {
	rootCmd.AddCommand(announceCmd)
	announceCmd.AddCommand(announceAddCmd, announceListCmd, announceRemoveCmd, announceEnableCmd, announceDisableCmd)

	announceAddCmd.Flags().String("name", "", "announcement name (required)")
	announceAddCmd.Flags().String("target", "", "channel or nick to send to (required)")
	announceAddCmd.Flags().String("text", "", "message text (required)")
	announceAddCmd.Flags().String("schedule", "", "cron schedule expression")
	_ = announceAddCmd.MarkFlagRequired("name")
	_ = announceAddCmd.MarkFlagRequired("target")
	_ = announceAddCmd.MarkFlagRequired("text")
}

func announceStore() *state.AnnouncementStore {
	cfg := loadConfig()
	return state.NewAnnouncementStore(filepath.Join(cfg.DataDir, "announcements.json"))
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Manage scheduled announcements",
}

var announceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new announcement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		target, _ := cmd.Flags().GetString("target")
		text, _ := cmd.Flags().GetString("text")
		schedule, _ := cmd.Flags().GetString("schedule")

		store := announceStore()
		item := &state.Announcement{
			Name:     name,
			Target:   target,
			Text:     text,
			Schedule: schedule,
			Enabled:  true,
		}
		if err := store.Add(item); err != nil {
			return fmt.Errorf("add announcement: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Announcement %q added.\n", name)
		return nil
	},
}

var announceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all announcements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := announceStore()
		items, err := store.List()
		if err != nil {
			return fmt.Errorf("list announcements: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No announcements configured.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSCHEDULE\tENABLED\tTARGET")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
				item.Name,
				item.Schedule,
				item.Enabled,
				item.Target,
			)
		}
		return w.Flush()
	},
}

var announceRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := announceStore()
		if err := store.Remove(args[0]); err != nil {
			return fmt.Errorf("remove announcement: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Announcement %q removed.\n", args[0])
		return nil
	},
}

var announceEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := announceStore()
		if err := store.SetEnabled(args[0], true); err != nil {
			return fmt.Errorf("enable announcement: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Announcement %q enabled.\n", args[0])
		return nil
	},
}

var announceDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := announceStore()
		if err := store.SetEnabled(args[0], false); err != nil {
			return fmt.Errorf("disable announcement: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Announcement %q disabled.\n", args[0])
		return nil
	},
}
