package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "clear <memory|tracking|recent|live|all>",
		Short:     "Delete stored data",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"memory", "tracking", "recent", "live", "all"},
		Run:       runClear,
	}

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	ctx := cmd.Context()
	clearers := map[string]func() error{
		"memory":   func() error { return a.memory.Clear(ctx) },
		"tracking": func() error { return a.tracking.Clear(ctx) },
		"recent":   func() error { return a.selector.ClearRecent(ctx) },
		"live":     func() error { return a.live.ClearHistory(ctx) },
		"all":      func() error { return a.store.Clear(ctx, "") },
	}
	fn, ok := clearers[args[0]]
	if !ok {
		exitErr("clear", fmt.Errorf("unknown target %q", args[0]))
	}
	if err := fn(); err != nil {
		exitErr("clear", err)
	}
	printJSON(map[string]any{"ok": true, "cleared": args[0]})
}
