package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matjam/crossfade/internal/cli/cmd/utils"
	"github.com/matjam/crossfade/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get crossfade status",
		Long:  `Returns the current status of the running crossfade process.`,
		Run: func(cmd *cobra.Command, args []string) {
			status, err := ipc.SendStatus()
			if err != nil {
				log.Errorf("crossfade is not running: %v", err)
				return
			}
			utils.PrintJSONColored(status)
		},
	}
}
