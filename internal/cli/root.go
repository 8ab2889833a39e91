package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matjam/crossfade"
	"github.com/matjam/crossfade/internal/cli/cmd"
	"github.com/matjam/crossfade/internal/cli/cmd/utils"
)

var rootCmd = &cobra.Command{
	Use:   "crossfade",
	Short: "An OpenGL image crossfade viewer",
	Long: `Crossfade shows a looping rippled crossfade between three images on a
plane that reflects an environment cube map, viewed through a damped
orbit camera.`,
	Run: func(c *cobra.Command, args []string) {
		if v, err := c.Flags().GetBool("installconfig"); err == nil && v {
			if _, err := utils.InstallDefaultConfig(); err != nil {
				log.Fatalf("Error installing config: %v", err)
			}
			return
		}

		if v, err := c.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := c.Flags().GetBool("version"); err == nil && v {
			babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
			green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
			log.Infof("%v version %v",
				babyBlue.Render("crossfade"),
				green.Render(strings.Trim(crossfade.Version, "\n\r ")))
			return
		}

		if v, err := c.Flags().GetBool("background"); err == nil && v {
			cmd.Daemonize()
			return
		}

		cmd.StartScene()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)
	RegisterFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewStopCmd())
	rootCmd.AddCommand(cmd.NewGenManCmd(rootCmd))
}
