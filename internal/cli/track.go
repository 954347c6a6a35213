package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/tracking"
)

func init() {
	track := &cobra.Command{
		Use:   "track",
		Short: "Track sessions and completions",
	}

	start := &cobra.Command{
		Use:   "start <item-id>",
		Short: "Start a session for an item",
		Args:  cobra.ExactArgs(1),
		Run:   runTrackStart,
	}
	start.Flags().StringP("type", "t", "", "Content type (required)")
	start.Flags().String("title", "", "Item title")
	start.MarkFlagRequired("type")

	end := &cobra.Command{
		Use:   "end <item-id>",
		Short: "End a session without completing it",
		Args:  cobra.ExactArgs(1),
		Run:   runTrackEnd,
	}

	complete := &cobra.Command{
		Use:   "complete <item-id>",
		Short: "Mark an item completed",
		Args:  cobra.ExactArgs(1),
		Run:   runTrackComplete,
	}
	complete.Flags().StringP("type", "t", "", "Content type (required)")
	complete.Flags().String("title", "", "Item title")
	complete.Flags().String("method", string(model.MethodEstimated), "verified or estimated")
	complete.Flags().Int("duration", 0, "Duration in seconds when no session is active")
	complete.MarkFlagRequired("type")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show today's engagement, streak and recent activity",
		Run:   runTrackStats,
	}
	stats.Flags().IntP("limit", "l", tracking.DefaultRecentLimit, "Recent activity entries")

	track.AddCommand(start, end, complete, stats)
	RootCmd.AddCommand(track)
}

func runTrackStart(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")

	a := mustOpenApp()
	defer a.Close()

	sess := a.tracking.StartSession(cmd.Context(), args[0], typ, title)
	printJSON(sess)
}

func runTrackEnd(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	end, ok := a.tracking.EndSession(cmd.Context(), args[0])
	if !ok {
		printJSON(map[string]any{"ok": false, "reason": "no active session"})
		return
	}
	printJSON(end)
}

func runTrackComplete(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	method, _ := cmd.Flags().GetString("method")
	duration, _ := cmd.Flags().GetInt("duration")
	m, err := model.ParseCompletionMethod(method)
	if err != nil {
		exitErr("method", err)
	}

	a := mustOpenApp()
	defer a.Close()

	ev := a.tracking.MarkCompleted(cmd.Context(), tracking.Completion{
		ItemID:          args[0],
		Type:            typ,
		Method:          m,
		Title:           title,
		DurationSeconds: duration,
	})
	printJSON(ev)
}

func runTrackStats(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	a := mustOpenApp()
	defer a.Close()

	ctx := cmd.Context()
	stats := a.tracking.AllStats(ctx)
	stats.RecentActivity = a.tracking.RecentActivity(ctx, limit)
	printJSON(map[string]any{
		"stats":   stats,
		"by_type": a.tracking.CompletionsByType(ctx),
	})
}
