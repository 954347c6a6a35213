package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record whether an activity helped",
		Run:   runFeedback,
	}

	cmd.Flags().StringP("type", "t", "", "Activity type, e.g. breathing or yoga (required)")
	cmd.Flags().String("title", "", "Activity title")
	cmd.Flags().Bool("helpful", true, "Whether it helped (--helpful=false if not)")

	cmd.MarkFlagRequired("type")

	RootCmd.AddCommand(cmd)
}

func runFeedback(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	helpful, _ := cmd.Flags().GetBool("helpful")

	a := mustOpenApp()
	defer a.Close()

	a.memory.RecordActivityFeedback(cmd.Context(), typ, title, helpful)
	ins := a.memory.Insights(cmd.Context())
	printJSON(map[string]any{
		"ok":        true,
		"preferred": ins.PreferredActivityTypes,
		"avoid":     ins.AvoidActivityTypes,
	})
}
