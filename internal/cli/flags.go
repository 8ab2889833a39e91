package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// configFlags maps flag names to the config keys they override when given.
var configFlags = map[string]string{
	"assets":    "assets",
	"debug":     "debug",
	"framerate": "framerate_limit",
}

func RegisterFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/crossfade/crossfade.toml)")

	flags.BoolP("installconfig", "i", false, "Install a default config file")
	flags.Bool("show-config", false, "Dump resolved config")
	flags.BoolP("background", "b", false, "Run as a daemon")
	flags.BoolP("version", "v", false, "Print version")
	flags.BoolP("help", "h", false, "Print usage")

	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.StringP("assets", "a", "", "Asset directory or http(s) URL")
	flags.Int("framerate", 0, "Frames per second, 1-240")

	for name, key := range configFlags {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("binding flag %s: %v", name, err)
		}
	}
}
