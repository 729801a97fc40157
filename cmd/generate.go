package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabiz/internal/lessongen"
	"github.com/abhisek/vocabiz/internal/screens/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson for a topic with an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		gen, ok, err := e.generator(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no LLM provider configured: set llm.provider or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.LLM.Timeout)
		defer cancel()

		lesson, err := gen.Generate(ctx, lessongen.Request{Topic: topic, Count: count, SourceLang: source, TargetLang: target})
		if err != nil {
			return err
		}
		path, err := generate.Save(e.cfg.Lessons.Dir, lesson)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q (%d words) to %s\n", lesson.Title, lesson.Len(), path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Lesson topic, e.g. \"kitchen utensils\"")
	generateCmd.Flags().IntP("count", "n", lessongen.DefaultCount, "Number of word pairs")
	generateCmd.Flags().String("source", "", "Source language (default English)")
	generateCmd.Flags().String("target", "", "Target language (default Spanish)")
	_ = generateCmd.MarkFlagRequired("topic")
}
