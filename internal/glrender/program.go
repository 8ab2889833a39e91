package glrender

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shader/screen.vs
var vertexShader string

//go:embed shader/screen.fs
var fragmentShader string

type program struct {
	id  uint32
	loc struct {
		position int32
		uv       int32

		projection     int32
		view           int32
		cameraPosition int32

		currentUnit  int32
		currentScale int32
		nextUnit     int32
		nextScale    int32
		env          int32
		time         int32
		progress     int32
	}
}

func newProgram(vertexSource, fragmentSource string) (*program, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link program: %v", logText)
	}

	p := &program{id: id}
	p.loc.position = gl.GetAttribLocation(id, gl.Str("position\x00"))
	p.loc.uv = gl.GetAttribLocation(id, gl.Str("uv\x00"))
	p.loc.projection = uniformLocation(id, "projectionMatrix")
	p.loc.view = uniformLocation(id, "viewMatrix")
	p.loc.cameraPosition = uniformLocation(id, "cameraPosition")
	p.loc.currentUnit = uniformLocation(id, "uCurrentUnit")
	p.loc.currentScale = uniformLocation(id, "uCurrentCoveredScale")
	p.loc.nextUnit = uniformLocation(id, "uNextUnit")
	p.loc.nextScale = uniformLocation(id, "uNextCoveredScale")
	p.loc.env = uniformLocation(id, "tEnv")
	p.loc.time = uniformLocation(id, "uTime")
	p.loc.progress = uniformLocation(id, "uProgress")
	return p, nil
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}

func (p *program) use() {
	gl.UseProgram(p.id)
}

func (p *program) setMat4(loc int32, m mgl32.Mat4) {
	if loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (p *program) delete() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
