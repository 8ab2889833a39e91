package ipc

import (
	"os"
	"path/filepath"
)

const socketName = "crossfade.sock"

// SocketPath is the control socket in $XDG_RUNTIME_DIR, or the temp dir when
// that is unset.
func SocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, socketName)
}
