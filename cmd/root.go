package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabiz/internal/config"
	"github.com/abhisek/vocabiz/internal/lessongen"
	"github.com/abhisek/vocabiz/internal/llm"
	"github.com/abhisek/vocabiz/internal/logging"
	"github.com/abhisek/vocabiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "vocabiz",
	Short:         "Terminal vocabulary trainer",
	Long:          "Vocabiz drills vocabulary lessons as multiple-choice quizzes until every word is answered correctly.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "", false)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: ./vocabiz.yaml, then the user config dir)")
	pf.String("db", "", "Path to SQLite database file (overrides VOCABIZ_DB)")
	pf.String("learner", "", "Learner whose progress is read and written")
	pf.String("lessons-dir", "", "Directory holding word1.txt, word2.txt, ...")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what most commands need: config, an open store and a logger.
type env struct {
	cfg    *config.Config
	store  *store.Store
	log    *logrus.Logger
	closer io.Closer
}

func (e *env) Close() {
	e.store.Close()
	if e.closer != nil {
		e.closer.Close()
	}
}

// openEnv loads config and opens the store. When toFile is set, logs go to
// the log file so they do not corrupt the TUI.
func openEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if toFile {
		e.log, e.closer, err = logging.NewFile(cfg.Log, cfg.DefaultLogFile())
	} else {
		e.log, err = logging.New(cfg.Log, os.Stderr)
	}
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	e.store, err = store.Open(cfg.Data.DB)
	if err != nil {
		if e.closer != nil {
			e.closer.Close()
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.log.WithFields(logrus.Fields{"db": cfg.Data.DB, "learner": cfg.Learner.ID}).Debug("store opened")
	return e, nil
}

// generator builds a lesson generator when an LLM provider is configured.
// ok is false when no provider is available.
func (e *env) generator(ctx context.Context) (*lessongen.Generator, bool, error) {
	cfg := e.cfg.LLM
	if !cfg.Discover() {
		return nil, false, nil
	}
	provider, err := llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, false, err
	}
	return lessongen.New(provider), true, nil
}
