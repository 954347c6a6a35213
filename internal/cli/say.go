package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/signal"
)

func init() {
	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Record a message and its detected emotion",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSay,
	}

	cmd.Flags().String("emotion", "", "Emotion (default: detected from the text)")

	RootCmd.AddCommand(cmd)
}

func runSay(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")
	emotion, _ := cmd.Flags().GetString("emotion")
	if emotion == "" {
		emotion = signal.DetectEmotion(text)
	}

	a := mustOpenApp()
	defer a.Close()

	m := a.memory.RecordConversation(cmd.Context(), text, emotion)
	printJSON(m.Conversations[len(m.Conversations)-1])
}
