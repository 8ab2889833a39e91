package main

import (
	// import image formats to register them
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"runtime"

	_ "golang.org/x/image/webp"

	"github.com/matjam/crossfade/internal/cli"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread
	runtime.LockOSThread()
}

func main() {
	cli.Execute()
}
