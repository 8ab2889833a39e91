package ipc

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matjam/crossfade/internal/frame"
	"github.com/matjam/crossfade/internal/render"
	"github.com/matjam/crossfade/internal/scene"
)

// Scene is the part of *scene.Scene the manager drives.
type Scene interface {
	Snapshot() scene.Snapshot
	Dispose()
}

// Manager runs the frame loop on the calling thread and applies commands
// queued by the socket handlers between frames.
type Manager struct {
	sync.Mutex
	scene   Scene
	rc      render.Context
	loop    *frame.Loop
	cmds    chan Command
	stopped bool
}

// NewManager takes ownership of rc. The scene is disposed before rc when
// Run returns.
func NewManager(s Scene, rc render.Context, loop *frame.Loop) *Manager {
	return &Manager{
		scene: s,
		rc:    rc,
		loop:  loop,
		cmds:  make(chan Command, 4),
	}
}

func (m *Manager) Snapshot() scene.Snapshot {
	return m.scene.Snapshot()
}

// EnqueueCommand never blocks. When the queue is full the command is
// dropped.
func (m *Manager) EnqueueCommand(cmd Command) {
	select {
	case m.cmds <- cmd:
	default:
		log.Warnf("Command queue full, dropping %s", cmd.Type)
	}
}

func (m *Manager) Stop() {
	m.EnqueueCommand(Command{Type: CommandStop})
}

// Run blocks until the window closes, a stop command arrives or ctx is
// done. It must be called from the thread that owns the rendering context.
func (m *Manager) Run(ctx context.Context, framerate int) error {
	log.Info("Starting render loop...")

	err := m.loop.Run(ctx, framerate, m.drain)
	switch {
	case errors.Is(err, render.ErrClosed):
		log.Info("Window closed")
		err = nil
	case errors.Is(err, context.Canceled):
		err = nil
	}

	m.shutdown()
	log.Info("Render loop stopped.")
	return err
}

func (m *Manager) drain() {
	for {
		select {
		case cmd := <-m.cmds:
			switch cmd.Type {
			case CommandStop:
				log.Info("Received stop command")
				m.loop.Stop()
			default:
				log.Error("Unknown command:", cmd.Type)
			}
		default:
			return
		}
	}
}

func (m *Manager) shutdown() {
	m.Lock()
	defer m.Unlock()

	if m.stopped {
		return
	}
	m.stopped = true
	m.scene.Dispose()
	m.rc.Dispose()
}
