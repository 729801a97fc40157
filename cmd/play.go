package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabiz/internal/app"
	"github.com/abhisek/vocabiz/internal/drill"
	"github.com/abhisek/vocabiz/internal/screen"
	drillscreen "github.com/abhisek/vocabiz/internal/screens/drill"
	"github.com/abhisek/vocabiz/internal/screens/generate"
	"github.com/abhisek/vocabiz/internal/screens/history"
	"github.com/abhisek/vocabiz/internal/screens/lessons"
	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/vocab"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a lesson and start drilling",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		untitled, _ := cmd.Flags().GetBool("untitled")
		return runPlay(cmd, file, untitled)
	},
}

func init() {
	playCmd.Flags().StringP("file", "f", "", "Drill a single lesson file instead of the lessons directory")
	playCmd.Flags().Bool("untitled", false, "Treat every line of --file as a word pair (no title line)")
}

func runPlay(cmd *cobra.Command, file string, untitled bool) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cfg
	var rng drill.Rand
	if cfg.Drill.Seed != 0 {
		rng = drill.NewRand(cfg.Drill.Seed)
	}

	startDrill := func(l *vocab.Lesson) screen.Screen {
		return drillscreen.New(l, drillscreen.Deps{
			Events:        e.store.EventRepo(),
			Recorder:      store.NewCompletionRecorder(e.store.ProgressRepo(), cfg.Learner.ID),
			LearnerID:     cfg.Learner.ID,
			FeedbackDelay: cfg.Drill.FeedbackDelay,
			Rand:          rng,
			Logger:        e.log,
		})
	}

	if file != "" {
		lesson, err := vocab.LoadFile(file, !untitled, e.log)
		if err != nil {
			return err
		}
		return app.Run(startDrill(lesson), cfg.Learner.ID)
	}

	deps := lessons.Deps{
		Dir:        cfg.Lessons.Dir,
		Progress:   e.store.ProgressRepo(),
		LearnerID:  cfg.Learner.ID,
		Logger:     e.log,
		StartDrill: startDrill,
		History: func() screen.Screen {
			return history.New(e.store.EventRepo(), cfg.Learner.ID)
		},
	}

	gen, ok, err := e.generator(cmd.Context())
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Lesson generation will be unavailable.")
	case ok:
		deps.Generate = func() screen.Screen {
			return generate.New(generate.Deps{
				Generator:  gen,
				Dir:        cfg.Lessons.Dir,
				Timeout:    cfg.LLM.Timeout,
				Logger:     e.log,
				StartDrill: startDrill,
			})
		}
	}

	return app.Run(lessons.New(deps), cfg.Learner.ID)
}
