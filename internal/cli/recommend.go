package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/recommend"
	"github.com/rcliao/rooted/internal/signal"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recommend [text]",
		Short: "Recommend activities for a mood",
		Long:  "Recommend activities. The mood comes from --mood or is detected from the text; signals always come from the text.",
		Run:   runRecommend,
	}

	cmd.Flags().StringP("mood", "m", "", "Mood (overrides detection)")
	cmd.Flags().StringP("energy", "e", "", "Energy: low, medium or high")
	cmd.Flags().StringSliceP("goal", "g", nil, "Goals such as calm, stress or movement (repeatable)")
	cmd.Flags().Bool("no-live", false, "Skip live content and use the static catalog only")

	RootCmd.AddCommand(cmd)
}

func runRecommend(cmd *cobra.Command, args []string) {
	moodFlag, _ := cmd.Flags().GetString("mood")
	energy, _ := cmd.Flags().GetString("energy")
	goals, _ := cmd.Flags().GetStringSlice("goal")
	noLive, _ := cmd.Flags().GetBool("no-live")

	mood, signals := signal.Extract(strings.Join(args, " "))
	if moodFlag != "" {
		if !model.ValidMoods[model.Mood(moodFlag)] {
			exitErr("mood", errUnknownMood(moodFlag))
		}
		mood = model.Mood(moodFlag)
	}

	a := mustOpenApp()
	defer a.Close()

	sel := a.selector
	if noLive {
		sel = recommend.New(a.store, recommend.Options{
			Preferences:   a.memory,
			RecentCap:     cfg.Recommend.RecentCap,
			RecentExclude: cfg.Recommend.RecentExclude,
		})
	}

	res, err := sel.Recommend(cmd.Context(), recommend.Request{
		Mood:    mood,
		Signals: signals,
		Energy:  energy,
		Goals:   goals,
	})
	if err != nil {
		exitErr("recommend", err)
	}

	printJSON(map[string]any{
		"mood":     mood,
		"signals":  signals,
		"result":   res,
		"callback": a.memory.Callback(cmd.Context()),
	})
}
