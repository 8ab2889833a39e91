package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/viper"

	"github.com/matjam/crossfade/internal/assets"
	"github.com/matjam/crossfade/internal/cli/cmd/utils"
	"github.com/matjam/crossfade/internal/frame"
	"github.com/matjam/crossfade/internal/glrender"
	"github.com/matjam/crossfade/internal/ipc"
	"github.com/matjam/crossfade/internal/scene"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "crossfade")
}

// Daemonize re-executes crossfade in the background. The parent returns as
// soon as the child has started.
func Daemonize() {
	if err := os.MkdirAll(dataDir(), 0755); err != nil {
		log.Fatalf("Error creating %s: %v", dataDir(), err)
	}

	cntxt := &daemon.Context{
		PidFileName: filepath.Join(dataDir(), "crossfade.pid"),
		PidFilePerm: 0644,
		WorkDir:     "/",
		Umask:       027,
		Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}

	child, err := cntxt.Reborn()
	if err != nil {
		log.Fatalf("Failed to start in the background: %v", err)
	}
	if child != nil {
		log.Infof("crossfade started in the background, PID %d", child.Pid)
		return
	}
	defer cntxt.Release()

	StartScene()
}

// StartScene opens the window, loads the assets and runs until the window
// closes or a stop command arrives. It must run on the main OS thread.
func StartScene() {
	log.Infof("StartScene() started in PID: %d", os.Getpid())

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("crossfade is already running, exiting")
		os.Exit(0)
	}

	opts, err := SceneOptions(viper.GetViper())
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	rc, err := glrender.New("crossfade", viper.GetInt("width"), viper.GetInt("height"))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	base := utils.CanonicalPath(viper.GetString("assets"))
	log.Infof("Loading assets from %s", base)
	registry := assets.Default(
		assets.NewFetcher(base),
		viper.GetString("image_ext"),
		viper.GetInt("max_texture_size"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(viper.GetInt("load_timeout"))*time.Second)
	loop := frame.NewLoop(clockwork.NewRealClock())
	s, err := scene.New(ctx, rc, registry, loop, opts)
	cancel()
	if err != nil {
		rc.Dispose()
		log.Fatalf("Failed to create scene: %v", err)
	}

	manager := ipc.NewManager(s, rc, loop)
	server := ipc.NewServer(manager)
	if err := server.Listen(ipc.SocketPath()); err != nil {
		log.Errorf("Control socket unavailable, status and stop will not work: %v", err)
	} else {
		go func() {
			log.Infof("Starting socket server")
			if err := server.Serve(); err != nil {
				log.Errorf("Socket server error: %v", err)
			}
		}()
	}

	if err := manager.Run(context.Background(), viper.GetInt("framerate_limit")); err != nil {
		log.Errorf("Render loop failed: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Socket server shutdown: %v", err)
	}
	log.Infof("crossfade exited")
}

func setupRotatingLogger() {
	logPath := filepath.Join(dataDir(), "crossfade.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if !viper.GetBool("debug") {
		log.SetLevel(log.InfoLevel)
	}
}
