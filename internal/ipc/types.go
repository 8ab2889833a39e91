package ipc

import "github.com/matjam/crossfade/internal/scene"

type CommandType string

const (
	CommandStop   CommandType = "stop"
	CommandStatus CommandType = "status"
)

type Command struct {
	Type CommandType `json:"type"`
	Args []string    `json:"args"`
}

// ManagerInterface is what the socket handlers need from the running
// process.
type ManagerInterface interface {
	Snapshot() scene.Snapshot
	EnqueueCommand(Command)
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type StatusResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Version string         `json:"version"`
	PID     int            `json:"pid"`
	Socket  string         `json:"socket"`
	Config  string         `json:"config"`
	Scene   scene.Snapshot `json:"scene"`
}
