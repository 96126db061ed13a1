package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/export"
	"github.com/abhisek/lessoncraft/internal/lesson"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export lesson plans",
}

var exportICSCmd = &cobra.Command{
	Use:   "ics <id>...",
	Short: "Export lesson plans as an iCalendar file, scheduled back to back",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		start := time.Now()
		if s, _ := cmd.Flags().GetString("start"); s != "" {
			if start, err = parseStart(s); err != nil {
				return err
			}
		}

		plans := make([]*lesson.Plan, 0, len(args))
		for _, id := range args {
			p, err := e.repo.Get(id)
			if err != nil {
				return err
			}
			plans = append(plans, p)
		}

		out := export.ICS(plans, start, time.Now())
		path, _ := cmd.Flags().GetString("out")
		if path == "" || path == "-" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		e.log.Info("calendar exported", "path", path, "lessons", len(plans))
		return nil
	},
}

var startLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// parseStart accepts RFC 3339 or a local "2006-01-02 15:04" time.
func parseStart(s string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --start %q: use RFC 3339 or \"2006-01-02 15:04\"", s)
}

func init() {
	exportICSCmd.Flags().String("start", "", "Start of the first lesson (default now)")
	exportICSCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	exportCmd.AddCommand(exportICSCmd)
}
