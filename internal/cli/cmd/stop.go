package cmd

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matjam/crossfade/internal/ipc"
)

func NewStopCmd() *cobra.Command {
	var wait time.Duration

	c := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running crossfade process",
		Long: `Asks the running crossfade process to dispose its scene and close its
window, then waits for the control socket to go away.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendStop(); err != nil {
				log.Fatalf("Failed to send 'stop' command: %v", err)
			}
			if wait <= 0 {
				log.Info("Stop command sent")
				return
			}
			if !waitForExit(wait) {
				log.Fatalf("crossfade still running after %v", wait)
			}
			log.Info("crossfade stopped")
		},
	}
	c.Flags().DurationVarP(&wait, "wait", "w", 5*time.Second, "How long to wait for the process to exit, 0 to return at once")
	return c
}

func waitForExit(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := ipc.SendStatus(); err != nil {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
