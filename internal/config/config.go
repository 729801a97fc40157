package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/vocabiz/internal/llm"
	"github.com/abhisek/vocabiz/internal/store"
)

// EnvPrefix namespaces environment overrides, e.g. VOCABIZ_LOG_LEVEL.
const EnvPrefix = "VOCABIZ"

// Config holds all configuration for vocabiz.
type Config struct {
	Learner LearnerConfig `mapstructure:"learner"`
	Lessons LessonsConfig `mapstructure:"lessons"`
	Drill   DrillConfig   `mapstructure:"drill"`
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     llm.Config    `mapstructure:"llm"`
}

// LearnerConfig identifies whose completion counts are read and written.
type LearnerConfig struct {
	ID string `mapstructure:"id"`
}

// LessonsConfig locates lesson files.
type LessonsConfig struct {
	Dir string `mapstructure:"dir"`
}

// DrillConfig tunes the drill screen.
type DrillConfig struct {
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
	Seed          uint64        `mapstructure:"seed"`
}

// DataConfig locates persistent state.
type DataConfig struct {
	DB string `mapstructure:"db"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// flagKeys maps persistent CLI flags to config keys.
var flagKeys = map[string]string{
	"db":          "data.db",
	"learner":     "learner.id",
	"lessons-dir": "lessons.dir",
	"log-level":   "log.level",
}

// Load reads defaults, then the config file, then VOCABIZ_* environment
// variables, then any changed flags in fs. file may be empty, in which
// case vocabiz.yaml is looked up in the working directory and the user
// config directory and is optional.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("vocabiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vocabiz"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, cfg.resolve()
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("learner.id", defaultLearner())
	v.SetDefault("lessons.dir", ".")
	v.SetDefault("drill.feedback_delay", 1500*time.Millisecond)
	v.SetDefault("drill.seed", 0)
	v.SetDefault("data.db", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.provider", def.Provider)
	for name, pc := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  def.Anthropic,
		llm.ProviderOpenAI:     def.OpenAI,
		llm.ProviderGemini:     def.Gemini,
		llm.ProviderOpenRouter: def.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", def.Retry.Multiplier)
}

// resolve fills values whose defaults depend on the environment.
func (c *Config) resolve() error {
	if c.Data.DB == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		c.Data.DB = p
	} else if err := store.EnsureDir(c.Data.DB); err != nil {
		return fmt.Errorf("create DB dir: %w", err)
	}

	if c.Drill.FeedbackDelay < 0 {
		c.Drill.FeedbackDelay = 0
	}
	if c.Learner.ID == "" {
		c.Learner.ID = defaultLearner()
	}
	return nil
}

// DefaultLogFile is where TUI sessions log when log.file is unset.
func (c *Config) DefaultLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if dir, err := store.DataDir(); err == nil {
		return filepath.Join(dir, "vocabiz.log")
	}
	return filepath.Join(filepath.Dir(c.Data.DB), "vocabiz.log")
}

func defaultLearner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "default"
}
