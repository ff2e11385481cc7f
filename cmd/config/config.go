package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-topics/internal/tui/chooser"
	"github.com/mattsolo1/grove-topics/pkg/launcher"
	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
	"github.com/mattsolo1/grove-topics/pkg/service"
)

// Configuration keys. Flags use the same names with dashes.
const (
	KeyNotesDir      = "notes_dir"
	KeyTemplateDir   = "template_dir"
	KeyStartupScript = "startup_script"
	KeySelector      = "selector"
	KeyDmenuCommand  = "dmenu_command"
	KeyLauncher      = "launcher"
	KeyExclude       = "exclude"
	KeyLogLevel      = "log_level"
)

var keys = []string{
	KeyNotesDir, KeyTemplateDir, KeyStartupScript,
	KeySelector, KeyDmenuCommand, KeyLauncher, KeyExclude,
}

// InitConfig loads the config file and environment. Lowest precedence are
// the values from the topics section of grove.yml.
func InitConfig(logger *logrus.Logger) {
	if cfgFile := os.Getenv("TOPICS_CONFIG"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "topics"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TOPICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeySelector, "auto")
	viper.SetDefault(KeyDmenuCommand, selector.DefaultDmenuCommand)
	viper.SetDefault(KeyLauncher, "process")
	viper.SetDefault(KeyLogLevel, "warn")

	applyGroveDefaults(logger)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warnf("could not read config file: %v", err)
		}
	}
}

// AddOpenFlags registers the flags of the open flow on cmd.
func AddOpenFlags(cmd *cobra.Command) {
	AddNotesDirFlag(cmd)
	cmd.Flags().StringP("template-dir", "t", "", "Path to template directory")
	cmd.Flags().StringP("startup-script", "s", "", "Path to startup script")
	cmd.Flags().String("selector", "auto", "Chooser to use: auto, tui or dmenu")
	cmd.Flags().String("dmenu-command", selector.DefaultDmenuCommand, "dmenu-compatible chooser command line")
	cmd.Flags().String("launcher", "process", "How to start the startup script: process or tmux")
	cmd.Flags().StringSlice("exclude", nil, "Glob of template entries not to copy (repeatable)")
}

// AddNotesDirFlag registers only the notes root flag.
func AddNotesDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("notes-dir", "n", "", "Path to notes directory root")
}

// BindFlags binds the flags defined on the running command to their keys.
// Binding happens per run because the same key exists on several commands.
func BindFlags(cmd *cobra.Command) error {
	for _, key := range keys {
		flag := cmd.Flags().Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// LogLevel returns the configured logrus level, defaulting to warn.
func LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(viper.GetString(KeyLogLevel))
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

// InitService builds the service from the bound configuration.
func InitService(logger *logrus.Logger) (*service.Service, error) {
	log := logrus.NewEntry(logger)

	sel, err := newSelector(viper.GetString(KeySelector), viper.GetString(KeyDmenuCommand))
	if err != nil {
		return nil, err
	}
	l, err := newLauncher(viper.GetString(KeyLauncher), log)
	if err != nil {
		return nil, err
	}

	cfg := &service.Config{
		NotesDir:      expandHome(viper.GetString(KeyNotesDir)),
		TemplateDir:   expandHome(viper.GetString(KeyTemplateDir)),
		StartupScript: expandHome(viper.GetString(KeyStartupScript)),
		Excludes:      viper.GetStringSlice(KeyExclude),
	}

	return service.New(cfg,
		service.WithSelector(sel),
		service.WithLauncher(l),
		service.WithLogger(log),
	)
}

func newSelector(kind, dmenuCommand string) (selector.Selector, error) {
	switch kind {
	case "", "auto":
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return chooser.New(), nil
		}
		return selector.NewDmenu(dmenuCommand), nil
	case "tui":
		return chooser.New(), nil
	case "dmenu", "rofi":
		return selector.NewDmenu(dmenuCommand), nil
	}
	return nil, models.NewError(models.ConfigError, "unknown selector", kind, nil)
}

func newLauncher(kind string, log *logrus.Entry) (launcher.Launcher, error) {
	switch kind {
	case "", "process":
		return launcher.NewProcess(), nil
	case "tmux":
		return &launcher.Tmux{Fallback: launcher.NewProcess(), Log: log}, nil
	}
	return nil, models.NewError(models.ConfigError, "unknown launcher", kind, nil)
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
