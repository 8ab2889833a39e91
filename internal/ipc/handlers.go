package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/matjam/crossfade"
)

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "crossfade is running",
			Version: strings.Trim(crossfade.Version, "\n\r "),
			PID:     os.Getpid(),
			Socket:  SocketPath(),
			Config:  viper.ConfigFileUsed(),
			Scene:   m.Snapshot(),
		}, "  ")
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.EnqueueCommand(Command{Type: CommandStop})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /command
func commandHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd Command
		if err := c.Bind(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "invalid command"})
		}

		switch cmd.Type {
		case CommandStatus:
			return c.JSON(http.StatusOK, Response{Status: "ok", Data: m.Snapshot()})
		case CommandStop:
			m.EnqueueCommand(cmd)
			return c.JSON(http.StatusOK, Response{Status: "ok", Message: "stopping"})
		default:
			return c.JSON(http.StatusBadRequest, Response{
				Status:  "error",
				Message: "unknown command: " + string(cmd.Type),
			})
		}
	}
}
