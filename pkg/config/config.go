// Package config loads memodrill settings from defaults, an optional
// memodrill.yaml file, MEMODRILL_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/coolbeans/memodrill/pkg/pairs"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name searched for, without extension.
	FileName = "memodrill"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MEMODRILL"
)

// Preview modes for quiz prompts.
const (
	PreviewAuto = "auto"
	PreviewANSI = "ansi"
	PreviewText = "text"
	PreviewNone = "none"
)

// Settings is the full configuration.
type Settings struct {
	Debug      bool           `mapstructure:"debug"`
	LogLevel   string         `mapstructure:"log_level"`
	SchemeFile string         `mapstructure:"scheme_file"`
	Quiz       QuizSettings   `mapstructure:"quiz"`
	Pairs      PairsSettings  `mapstructure:"pairs"`
	Render     RenderSettings `mapstructure:"render"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// QuizSettings configures recognition sessions.
type QuizSettings struct {
	LogDir  string `mapstructure:"log_dir"`
	NoLog   bool   `mapstructure:"no_log"`
	Reveal  bool   `mapstructure:"reveal"`
	Seed    uint64 `mapstructure:"seed"`
	Preview string `mapstructure:"preview"`
}

// PairsSettings configures letter-pair drills.
type PairsSettings struct {
	Dir       string `mapstructure:"dir"`
	Mastery   int    `mapstructure:"mastery"`
	LearnLast string `mapstructure:"learn_last"`
	Watch     bool   `mapstructure:"watch"`
}

// RenderSettings configures image export.
type RenderSettings struct {
	Size int `mapstructure:"size"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", string(logger.LogLevelWarn))
	v.SetDefault("scheme_file", "")

	v.SetDefault("quiz.log_dir", "logs")
	v.SetDefault("quiz.no_log", false)
	v.SetDefault("quiz.reveal", false)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("quiz.preview", PreviewAuto)

	v.SetDefault("pairs.dir", ".")
	v.SetDefault("pairs.mastery", pairs.DefaultMastery)
	v.SetDefault("pairs.learn_last", pairs.DefaultLearnLast)
	v.SetDefault("pairs.watch", false)

	v.SetDefault("render.size", 256)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit path
// must exist; otherwise memodrill.yaml is looked up in the working directory
// and the user config directory, and its absence is not an error.
func Load(v *viper.Viper, path string) (*Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	s.File = v.ConfigFileUsed()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	var problems []string

	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", s.LogLevel))
	}
	switch s.Quiz.Preview {
	case PreviewAuto, PreviewANSI, PreviewText, PreviewNone:
	default:
		problems = append(problems, fmt.Sprintf("quiz.preview %q is not one of auto, ansi, text, none", s.Quiz.Preview))
	}
	if s.Pairs.Mastery < 1 {
		problems = append(problems, "pairs.mastery must be at least 1")
	}
	if s.Render.Size < 8 {
		problems = append(problems, "render.size must be at least 8")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Level returns the effective log level; debug overrides log_level.
func (s *Settings) Level() logger.LogLevel {
	if s.Debug {
		return logger.LogLevelDebug
	}
	return logger.ParseLevel(s.LogLevel)
}
