package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/rooted/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored data as JSON",
		Long:  "Export every stored key as JSON. Filter by key prefix with -p, e.g. -p live_cache:",
		Run:   runExport,
	}

	cmd.Flags().StringP("prefix", "p", "", "Only keys with this prefix")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	prefix, _ := cmd.Flags().GetString("prefix")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := store.ExportAll(cmd.Context(), s, prefix)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(entries)
}
