package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-topics/internal/tui/chooser"
	"github.com/mattsolo1/grove-topics/pkg/launcher"
	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`notes_dir: /from/file
template_dir: /template/from/file
exclude: [".git", "*.swp"]
log_level: debug
`), 0644))
	t.Setenv("TOPICS_CONFIG", cfgFile)
	t.Setenv("TOPICS_STARTUP_SCRIPT", "/from/env.sh")

	cmd := &cobra.Command{Use: "open"}
	AddOpenFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"-n", "/from/flag"}))

	InitConfig(quietLogger())
	require.NoError(t, BindFlags(cmd))

	assert.Equal(t, "/from/flag", viper.GetString(KeyNotesDir))
	assert.Equal(t, "/template/from/file", viper.GetString(KeyTemplateDir))
	assert.Equal(t, "/from/env.sh", viper.GetString(KeyStartupScript))
	assert.Equal(t, []string{".git", "*.swp"}, viper.GetStringSlice(KeyExclude))
	assert.Equal(t, "auto", viper.GetString(KeySelector))
	assert.Equal(t, logrus.DebugLevel, LogLevel())
}

func TestBindFlagsSkipsUndefinedFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "list"}
	AddNotesDirFlag(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--notes-dir", "/notes"}))
	require.NoError(t, BindFlags(cmd))

	assert.Equal(t, "/notes", viper.GetString(KeyNotesDir))
	assert.Empty(t, viper.GetString(KeyTemplateDir))
}

func TestLogLevelFallsBackToWarn(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyLogLevel, "chatty")
	assert.Equal(t, logrus.WarnLevel, LogLevel())
}

func TestNewSelector(t *testing.T) {
	sel, err := newSelector("tui", "")
	require.NoError(t, err)
	assert.IsType(t, &chooser.Chooser{}, sel)

	sel, err = newSelector("dmenu", "wofi --dmenu")
	require.NoError(t, err)
	require.IsType(t, &selector.Dmenu{}, sel)
	assert.Equal(t, "wofi", sel.(*selector.Dmenu).Command)

	_, err = newSelector("zenity", "")
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ConfigError))
}

func TestNewLauncher(t *testing.T) {
	l, err := newLauncher("process", nil)
	require.NoError(t, err)
	assert.IsType(t, &launcher.Process{}, l)

	l, err = newLauncher("tmux", nil)
	require.NoError(t, err)
	assert.IsType(t, &launcher.Tmux{}, l)

	_, err = newLauncher("systemd", nil)
	assert.True(t, models.IsKind(err, models.ConfigError))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes"), expandHome("~/notes"))
	assert.Equal(t, "/abs/notes", expandHome("/abs/notes"))
	assert.Equal(t, "~user/notes", expandHome("~user/notes"))
	assert.Equal(t, "", expandHome(""))
}
