package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "logs", s.Quiz.LogDir)
	assert.Equal(t, PreviewAuto, s.Quiz.Preview)
	assert.Equal(t, 3, s.Pairs.Mastery)
	assert.Equal(t, "AER", s.Pairs.LearnLast)
	assert.Equal(t, 256, s.Render.Size)
	assert.Empty(t, s.File)
	assert.Equal(t, logger.LogLevelWarn, s.Level())
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("memodrill.yaml", []byte("quiz:\n  reveal: true\n  seed: 42\npairs:\n  mastery: 5\n"), 0o644))

	s, err := Load(New(), "")
	require.NoError(t, err)
	assert.True(t, s.Quiz.Reveal)
	assert.Equal(t, uint64(42), s.Quiz.Seed)
	assert.Equal(t, 5, s.Pairs.Mastery)
	assert.Equal(t, "memodrill.yaml", filepath.Base(s.File))
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\nrender:\n  size: 64\n"), 0o644))

	s, err := Load(New(), path)
	require.NoError(t, err)
	assert.True(t, s.Debug)
	assert.Equal(t, 64, s.Render.Size)
	assert.Equal(t, logger.LogLevelDebug, s.Level())

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MEMODRILL_QUIZ_LOG_DIR", "/tmp/sessions")
	t.Setenv("MEMODRILL_PAIRS_LEARN_LAST", "XY")

	s, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sessions", s.Quiz.LogDir)
	assert.Equal(t, "XY", s.Pairs.LearnLast)
}

func TestFlagOverrides(t *testing.T) {
	isolate(t)
	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("reveal", false, "")
	require.NoError(t, v.BindPFlag("quiz.reveal", flags.Lookup("reveal")))
	require.NoError(t, flags.Parse([]string{"--reveal"}))

	s, err := Load(v, "")
	require.NoError(t, err)
	assert.True(t, s.Quiz.Reveal)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Settings){
		"log level": func(s *Settings) { s.LogLevel = "loud" },
		"preview":   func(s *Settings) { s.Quiz.Preview = "hologram" },
		"mastery":   func(s *Settings) { s.Pairs.Mastery = 0 },
		"size":      func(s *Settings) { s.Render.Size = 4 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			s, err := Load(New(), "")
			require.NoError(t, err)
			mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}
