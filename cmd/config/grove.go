package config

import (
	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// TopicsConfig represents the 'topics' section in grove.yml
type TopicsConfig struct {
	NotesDir      string   `yaml:"notes_dir"`
	TemplateDir   string   `yaml:"template_dir"`
	StartupScript string   `yaml:"startup_script"`
	Selector      string   `yaml:"selector"`
	DmenuCommand  string   `yaml:"dmenu_command"`
	Launcher      string   `yaml:"launcher"`
	Exclude       []string `yaml:"exclude"`
}

// applyGroveDefaults seeds viper defaults from grove.yml. A missing grove
// config is normal and leaves the built-in defaults in place.
func applyGroveDefaults(logger *logrus.Logger) {
	cfg, err := coreconfig.LoadDefault()
	if err != nil {
		logger.Debugf("could not load grove config, using topics config only: %v", err)
		return
	}

	var tc TopicsConfig
	if err := cfg.UnmarshalExtension("topics", &tc); err != nil {
		logger.Debugf("no topics section in grove config: %v", err)
		return
	}

	for key, value := range map[string]string{
		KeyNotesDir:      tc.NotesDir,
		KeyTemplateDir:   tc.TemplateDir,
		KeyStartupScript: tc.StartupScript,
		KeySelector:      tc.Selector,
		KeyDmenuCommand:  tc.DmenuCommand,
		KeyLauncher:      tc.Launcher,
	} {
		if value != "" {
			viper.SetDefault(key, value)
		}
	}
	if len(tc.Exclude) > 0 {
		viper.SetDefault(KeyExclude, tc.Exclude)
	}
}
