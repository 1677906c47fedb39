package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	remindNotify bool
	remindJSON   bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show overdue and soon-due tasks",
	Long: `Show open tasks that are overdue, due within the soon window
(reminders.soon_minutes), or due within the upcoming window
(reminders.upcoming_hours).

With --notify the reminders are also posted to the configured Slack
webhook (notifications.slack.webhook_url).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		if Reminders == nil {
			return fmt.Errorf("reminder engine not initialized")
		}

		reminders := Reminders.Evaluate(Store.Snapshot(), Clock.Now())

		if remindJSON {
			if err := writeJSON(cmd.OutOrStdout(), reminders); err != nil {
				return err
			}
		} else if len(reminders) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing due. You're all caught up.")
		} else {
			for _, r := range reminders {
				fmt.Fprintf(cmd.OutOrStdout(), "  [%-8s] %s\n", r.Kind, r.Message)
			}
		}

		if !remindNotify {
			return nil
		}
		if Notifier == nil {
			return fmt.Errorf("no notifier configured (set notifications.slack.webhook_url)")
		}
		if err := Notifier.Notify(reminders); err != nil {
			return fmt.Errorf("sending reminders: %w", err)
		}
		if len(reminders) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Sent %d reminder(s)\n", len(reminders))
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().BoolVar(&remindNotify, "notify", false, "Also post reminders to Slack")
	remindCmd.Flags().BoolVar(&remindJSON, "json", false, "Output reminders as JSON")
	rootCmd.AddCommand(remindCmd)
}
