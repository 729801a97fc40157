package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabiz/internal/vocab"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons and how often each was completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := vocab.LoadDir(e.cfg.Lessons.Dir, e.log)
		if err != nil {
			return err
		}
		counts, err := e.store.ProgressRepo().Counts(cmd.Context(), e.cfg.Learner.ID)
		if err != nil {
			return fmt.Errorf("load completion counts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s  %-30s  %5s  %s\n", "File", "Title", "Words", "Completed")
		for _, l := range list {
			fmt.Fprintf(out, "%-14s  %-30s  %5d  %d times\n", l.Key, truncate(l.Title, 30), l.Len(), counts[l.Key])
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
