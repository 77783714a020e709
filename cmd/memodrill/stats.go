package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/coolbeans/memodrill/pkg/session"
	"github.com/spf13/cobra"
)

func statsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [log.csv...]",
		Short: "Summarize recorded quiz sessions",
		Long: `Reads session logs and prints overall accuracy and response time, followed
by the weakest letters. Without arguments every session log in the log
directory is read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			out := cmd.OutOrStdout()

			files := args
			if len(files) == 0 {
				matches, err := filepath.Glob(filepath.Join(a.settings.Quiz.LogDir, "*_rec_session_*.csv"))
				if err != nil {
					return fmt.Errorf("failed to list session logs: %w", err)
				}
				sort.Strings(matches)
				files = matches
			}
			if len(files) == 0 {
				fmt.Fprintf(out, "No session logs in %s\n", a.settings.Quiz.LogDir)
				return nil
			}

			var records []session.Record
			for _, f := range files {
				recs, err := session.ReadLogFile(f)
				if err != nil {
					return err
				}
				records = append(records, recs...)
			}

			s := session.Summarize(records)
			fmt.Fprintf(out, "Sessions: %d\n", len(files))
			fmt.Fprintf(out, "Correct:  %d/%d (%.1f%%)\n", s.Correct, s.Attempts, 100*s.Accuracy())
			fmt.Fprintf(out, "Mean response: %.2fs\n", s.Mean.Seconds())

			letters := s.Letters
			if top > 0 && len(letters) > top {
				letters = letters[:top]
			}
			if len(letters) == 0 {
				return nil
			}
			fmt.Fprintf(out, "\n%-6s %8s %8s %8s\n", "Letter", "Tries", "Acc", "Mean")
			for _, l := range letters {
				fmt.Fprintf(out, "%-6s %8d %7.0f%% %7.2fs\n", l.Letter, l.Attempts, 100*l.Accuracy(), l.Mean.Seconds())
			}
			return nil
		},
	}
	cmd.Flags().Int("top", 10, "number of weakest letters to show (0 = all)")
	cmd.Flags().String("log-dir", "logs", "directory of session logs")
	a.bindFlags(cmd, map[string]string{"quiz.log_dir": "log-dir"})
	return cmd
}
