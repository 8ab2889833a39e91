package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("crossfade")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/crossfade")
		viper.AddConfigPath("/etc/xdg/crossfade")
	}

	SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("CROSSFADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatalf("Error reading config: %v", err)
		}
		log.Debug("No config file found, using defaults")
	}

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
}

// SetDefaults installs the built-in value for every config key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("assets", "~/.local/share/crossfade/assets")
	v.SetDefault("image_ext", "webp")
	v.SetDefault("max_texture_size", 4096)
	v.SetDefault("width", 1600)
	v.SetDefault("height", 900)
	v.SetDefault("background", "#0a0a0a")
	v.SetDefault("framerate_limit", 60)
	v.SetDefault("camera_distance", 1.8)
	v.SetDefault("damping", 0.15)
	v.SetDefault("delay", 6.0)
	v.SetDefault("duration", 3.0)
	v.SetDefault("repeat_delay", 6.0)
	v.SetDefault("easing", "ease-in-out")
	v.SetDefault("load_timeout", 30)
	v.SetDefault("debug", false)
}
