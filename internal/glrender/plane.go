package glrender

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/matjam/crossfade/internal/render"
)

const floatSize = 4

// plane is a two-triangle quad centred on the origin in the XY plane.
type plane struct {
	r        *Renderer
	vbo      uint32
	uniforms *render.Uniforms
}

// planeVertices returns interleaved x, y, z, u, v for a width x height quad.
func planeVertices(width, height float32) []float32 {
	hw, hh := width/2, height/2
	return []float32{
		-hw, -hh, 0, 0, 0,
		hw, -hh, 0, 1, 0,
		hw, hh, 0, 1, 1,

		-hw, -hh, 0, 0, 0,
		hw, hh, 0, 1, 1,
		-hw, hh, 0, 0, 1,
	}
}

func (r *Renderer) CreatePlane(width, height float32, uniforms *render.Uniforms) (render.Plane, error) {
	vertices := planeVertices(width, height)

	p := &plane{r: r, uniforms: uniforms}
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.planes = append(r.planes, p)
	return p, nil
}

func (p *plane) draw(prog *program) {
	u := p.uniforms

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(u.Current.Texture))
	gl.Uniform1i(prog.loc.currentUnit, 0)
	gl.Uniform2f(prog.loc.currentScale, u.Current.CoveredScale[0], u.Current.CoveredScale[1])

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, uint32(u.Next.Texture))
	gl.Uniform1i(prog.loc.nextUnit, 1)
	gl.Uniform2f(prog.loc.nextScale, u.Next.CoveredScale[0], u.Next.CoveredScale[1])

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(u.Env))
	gl.Uniform1i(prog.loc.env, 2)

	gl.Uniform1f(prog.loc.time, u.Time)
	gl.Uniform1f(prog.loc.progress, u.Progress)

	stride := int32(5 * floatSize)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	if prog.loc.position != -1 {
		gl.EnableVertexAttribArray(uint32(prog.loc.position))
		gl.VertexAttribPointer(uint32(prog.loc.position), 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	}
	if prog.loc.uv != -1 {
		gl.EnableVertexAttribArray(uint32(prog.loc.uv))
		gl.VertexAttribPointer(uint32(prog.loc.uv), 2, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	}

	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	if prog.loc.position != -1 {
		gl.DisableVertexAttribArray(uint32(prog.loc.position))
	}
	if prog.loc.uv != -1 {
		gl.DisableVertexAttribArray(uint32(prog.loc.uv))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Dispose deletes the vertex buffer and detaches the plane from the renderer.
func (p *plane) Dispose() {
	if p.vbo == 0 {
		return
	}
	gl.DeleteBuffers(1, &p.vbo)
	p.vbo = 0

	planes := p.r.planes[:0]
	for _, q := range p.r.planes {
		if q != p {
			planes = append(planes, q)
		}
	}
	p.r.planes = planes
}
