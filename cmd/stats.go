package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion counts, accuracy and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		learner := e.cfg.Learner.ID
		events := e.store.EventRepo()
		out := cmd.OutOrStdout()

		counts, err := e.store.ProgressRepo().Counts(ctx, learner)
		if err != nil {
			return fmt.Errorf("load completion counts: %w", err)
		}

		fmt.Fprintf(out, "Learner: %s\n\n", learner)
		fmt.Fprintf(out, "%-14s  %-24s  %9s  %8s\n", "Lesson", "Title", "Completed", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 62))

		titles := map[string]string{}
		if list, err := vocab.LoadDir(e.cfg.Lessons.Dir, e.log); err == nil {
			for _, l := range list {
				titles[l.Key] = l.Title
				if _, ok := counts[l.Key]; !ok {
					counts[l.Key] = 0
				}
			}
		}
		keys := lo.Keys(counts)
		slices.Sort(keys)
		for _, key := range keys {
			acc, err := events.LessonAccuracy(ctx, learner, key)
			if err != nil {
				return fmt.Errorf("lesson accuracy: %w", err)
			}
			accuracy := "-"
			if acc.Attempts > 0 {
				accuracy = fmt.Sprintf("%d%%", acc.Percent())
			}
			fmt.Fprintf(out, "%-14s  %-24s  %9d  %8s\n", key, truncate(titles[key], 24), counts[key], accuracy)
		}

		sessions, err := events.RecentSessions(ctx, learner, limit)
		if err != nil {
			return fmt.Errorf("recent sessions: %w", err)
		}
		fmt.Fprintf(out, "\nRecent sessions\n")
		fmt.Fprintln(out, strings.Repeat("─", 62))
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No completed sessions yet.")
			return nil
		}
		for _, s := range sessions {
			acc := store.AnswerStats{Attempts: s.Attempts, Correct: s.Correct}.Percent()
			fmt.Fprintf(out, "%-19s  %-14s  %3d words  %3d attempts  %3d%%  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"), s.LessonKey, s.TotalWords, s.Attempts, acc, formatDuration(s.DurationSecs))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
