package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [lesson]",
	Short: "Reset completion counts for one lesson, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		lesson := ""
		if len(args) == 1 {
			lesson = args[0]
		}
		if lesson == "" && !all {
			return fmt.Errorf("name a lesson file (e.g. word1.txt) or pass --all")
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.ProgressRepo().Reset(cmd.Context(), e.cfg.Learner.ID, lesson); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		if lesson == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset all completion counts for %s\n", e.cfg.Learner.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset completion count of %s for %s\n", lesson, e.cfg.Learner.ID)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every lesson")
}
