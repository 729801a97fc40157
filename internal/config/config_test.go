package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every path lookup at a temp dir so tests never read the
// developer's real config or database.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Setenv("VOCABIZ_DB", "")
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Lessons.Dir)
	assert.Equal(t, 1500*time.Millisecond, cfg.Drill.FeedbackDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Learner.ID)
	assert.Equal(t, filepath.Join(dir, "data", "vocabiz", "vocabiz.db"), cfg.Data.DB)
	assert.Equal(t, filepath.Join(dir, "data", "vocabiz", "vocabiz.log"), cfg.DefaultLogFile())

	assert.Empty(t, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.LLM.Retry.InitialWait)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := isolate(t)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
learner:
  id: ana
lessons:
  dir: /lessons
drill:
  feedback_delay: 750ms
log:
  level: debug
llm:
  provider: gemini
  gemini:
    api_key: from-file
`), 0o644))

	t.Setenv("VOCABIZ_LOG_FORMAT", "json")
	t.Setenv("VOCABIZ_LLM_GEMINI_MODEL", "gemini-pro")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("learner", "", "")
	fs.String("lessons-dir", "", "")
	require.NoError(t, fs.Parse([]string{"--learner", "ben", "--db", filepath.Join(dir, "x", "v.db")}))

	cfg, err := Load(file, fs)
	require.NoError(t, err)

	assert.Equal(t, "ben", cfg.Learner.ID, "flag beats file")
	assert.Equal(t, "/lessons", cfg.Lessons.Dir, "unset flag keeps file value")
	assert.Equal(t, 750*time.Millisecond, cfg.Drill.FeedbackDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "env beats default")
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, filepath.Join(dir, "x", "v.db"), cfg.Data.DB)

	_, err = os.Stat(filepath.Join(dir, "x"))
	assert.NoError(t, err, "db directory should be created")
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vocabiz.yaml"), []byte("lessons:\n  dir: ./words\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "./words", cfg.Lessons.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_NegativeDelayClamped(t *testing.T) {
	isolate(t)
	t.Setenv("VOCABIZ_DRILL_FEEDBACK_DELAY", "-1s")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.Drill.FeedbackDelay)
}
