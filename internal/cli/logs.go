package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"taskflow-client/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func newLogsCmd(app *App) *cobra.Command {
	var (
		level  string
		limit  int
		offset int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show entries from the client log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := logger.NewIsolatedLogger(app.LogFile)
			entries, err := reader.GetLogs(strings.ToUpper(level), limit, offset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				dimColor.Fprintln(out, "No log entries.")
				return nil
			}
			for _, e := range entries {
				levelColor(e.Level).Fprintf(out, "%-5s ", e.Level)
				fmt.Fprintf(out, "%s ", e.Timestamp)
				if e.Module != "" {
					dimColor.Fprintf(out, "[%s] ", e.Module)
				}
				fmt.Fprintln(out, e.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Only entries at this level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}
