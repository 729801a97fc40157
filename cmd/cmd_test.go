package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabiz/internal/store"
)

type fixture struct {
	dir     string
	db      string
	lessons string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Chdir(dir)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "VOCABIZ_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}

	f := fixture{dir: dir, db: filepath.Join(dir, "v.db"), lessons: filepath.Join(dir, "lessons")}
	require.NoError(t, os.MkdirAll(f.lessons, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.lessons, "word1.txt"), []byte("Animals\ncat - gato\ndog - perro\n"), 0o644))
	return f
}

func (f fixture) run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--db", f.db, "--lessons-dir", f.lessons, "--learner", "ana", "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func (f fixture) complete(t *testing.T, lesson string, times int) {
	t.Helper()
	s, err := store.Open(f.db)
	require.NoError(t, err)
	defer s.Close()
	for range times {
		_, err := s.ProgressRepo().Increment(context.Background(), "ana", lesson)
		require.NoError(t, err)
	}
}

func TestLessonsCommand(t *testing.T) {
	f := newFixture(t)
	f.complete(t, "word1.txt", 2)

	out := f.run(t, "lessons")
	assert.Contains(t, out, "word1.txt")
	assert.Contains(t, out, "Animals")
	assert.Contains(t, out, "2 times")
}

func TestResetCommand(t *testing.T) {
	f := newFixture(t)
	f.complete(t, "word1.txt", 3)

	out := f.run(t, "reset", "word1.txt")
	assert.Contains(t, out, "Reset completion count of word1.txt for ana")
	assert.Contains(t, f.run(t, "lessons"), "0 times")
}

func TestStatsCommand(t *testing.T) {
	f := newFixture(t)
	f.complete(t, "word1.txt", 1)

	out := f.run(t, "stats")
	assert.Contains(t, out, "Learner: ana")
	assert.Contains(t, out, "word1.txt")
	assert.Contains(t, out, "No completed sessions yet.")
}

func TestLLMListEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, f.run(t, "llm", "list"), "No LLM events found.")
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, f.run(t, "version"), "vocabiz")
}
