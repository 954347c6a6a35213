package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/model"
)

var validEnergies = map[string]bool{"low": true, "medium": true, "high": true}

func errUnknownMood(m string) error {
	names := make([]string, len(model.Moods))
	for i, mood := range model.Moods {
		names[i] = string(mood)
	}
	return fmt.Errorf("unknown mood %q (want one of %s)", m, strings.Join(names, ", "))
}

func init() {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a mood and energy check-in",
		Run:   runCheckIn,
	}

	cmd.Flags().StringP("mood", "m", "", "How you feel, e.g. great, good, okay, low, stressed (required)")
	cmd.Flags().StringP("energy", "e", "medium", "Energy: low, medium or high")

	cmd.MarkFlagRequired("mood")

	RootCmd.AddCommand(cmd)
}

func runCheckIn(cmd *cobra.Command, args []string) {
	mood, _ := cmd.Flags().GetString("mood")
	energy, _ := cmd.Flags().GetString("energy")
	if !validEnergies[energy] {
		exitErr("energy", fmt.Errorf("unknown energy %q (want low, medium or high)", energy))
	}

	a := mustOpenApp()
	defer a.Close()

	m := a.memory.RecordCheckIn(cmd.Context(), mood, energy)
	ins := a.memory.Insights(cmd.Context())
	printJSON(map[string]any{
		"ok":             true,
		"total_checkins": m.Summary.TotalCheckIns,
		"streak_days":    ins.StreakDays,
		"callback":       a.memory.Callback(cmd.Context()),
	})
}
