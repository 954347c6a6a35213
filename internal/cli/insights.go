package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show derived memory insights",
		Run:   runInsights,
	}

	cmd.Flags().Bool("raw", false, "Print the stored memory document instead")

	RootCmd.AddCommand(cmd)
}

func runInsights(cmd *cobra.Command, args []string) {
	raw, _ := cmd.Flags().GetBool("raw")

	a := mustOpenApp()
	defer a.Close()

	if raw {
		printJSON(a.memory.Snapshot(cmd.Context()))
		return
	}
	ins := a.memory.Insights(cmd.Context())
	printJSON(map[string]any{
		"insights": ins,
		"callback": a.memory.Callback(cmd.Context()),
	})
}
