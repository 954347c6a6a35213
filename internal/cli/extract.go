package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/model"
	"github.com/rcliao/rooted/internal/signal"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract <text>",
		Short: "Detect mood and signals in free text",
		Args:  cobra.MinimumNArgs(1),
		Run:   runExtract,
	}

	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")
	mood, signals := signal.Extract(text)
	if signals == nil {
		signals = []model.Signal{}
	}
	printJSON(map[string]any{
		"mood":    mood,
		"signals": signals,
		"primary": signal.Primary(signals),
		"emotion": signal.DetectEmotion(text),
	})
}
