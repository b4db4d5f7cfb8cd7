package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/swrast"
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
	"github.com/gogpu/swrast/shader"
	"github.com/gogpu/swrast/texture"
)

// Cube vertices are a position, a normal and a texture coordinate.
const cubeVertexSize = 32

var cubeAttributes = []gputypes.VertexAttribute{
	{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
}

// cubeMesh returns the vertex and uint16 index data of a unit cube. Each
// face is counter-clockwise seen from outside.
func cubeMesh(repeat float32) (vertices, indices []byte) {
	faces := []struct{ n, up geom.Vec3 }{
		{geom.V3(0, 0, -1), geom.V3(0, 1, 0)},
		{geom.V3(0, 0, 1), geom.V3(0, 1, 0)},
		{geom.V3(1, 0, 0), geom.V3(0, 1, 0)},
		{geom.V3(-1, 0, 0), geom.V3(0, 1, 0)},
		{geom.V3(0, 1, 0), geom.V3(0, 0, 1)},
		{geom.V3(0, -1, 0), geom.V3(0, 0, 1)},
	}
	corners := [4]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	vertices = make([]byte, 0, len(faces)*4*cubeVertexSize)
	indices = make([]byte, 0, len(faces)*6*2)
	for i, f := range faces {
		right := f.up.Cross(f.n.Scale(-1))
		for _, c := range corners {
			p := f.n.Scale(0.5).
				Add(right.Scale(c.X - 0.5)).
				Add(f.up.Scale(c.Y - 0.5))
			rec := shader.Record(make([]byte, cubeVertexSize))
			rec.SetVec3(0, p)
			rec.SetVec3(12, f.n)
			rec.SetVec2(24, c.Scale(repeat))
			vertices = append(vertices, rec...)
		}
		base := uint16(4 * i)
		for _, k := range []uint16{0, 1, 2, 0, 2, 3} {
			indices = binary.LittleEndian.AppendUint16(indices, base+k)
		}
	}
	return vertices, indices
}

// cubeShader transforms cube vertices to clip space and computes a
// per-vertex diffuse term.
type cubeShader struct {
	mvp   geom.Mat4
	model geom.Mat4
	light geom.Vec3
}

// Output records: clip position, uv, light.
func (s *cubeShader) Layout() shader.VertexLayout {
	return shader.VertexLayout{Stride: 28, PositionOffset: 0}
}

func (s *cubeShader) Execute(in shader.VertexInput, out shader.Record) {
	pos, n, uv := in.Data.Vec3(0), in.Data.Vec3(12), in.Data.Vec2(24)
	out.SetVec4(0, s.mvp.MulPoint(pos))
	out.SetVec2(16, uv)
	wn := s.model.MulVec4(n.Vec4(0)).XYZ().Normalize()
	out.SetFloat(24, 0.25+0.75*max(0, wn.Dot(s.light)))
}

// texturedShader modulates a sampled texture by the interpolated light.
type texturedShader struct {
	tex     *resource.Resource
	sampler texture.Sampler
}

var texturedVaryings = shader.VaryingLayout{
	Stride: 28,
	Attributes: []shader.VaryingAttribute{
		{Offset: 16, Type: shader.Float2, Interpolation: shader.Perspective},
		{Offset: 24, Type: shader.Float, Interpolation: shader.Linear},
	},
}

func (s *texturedShader) Varyings() shader.VaryingLayout { return texturedVaryings }

func (s *texturedShader) Execute(in shader.Record) geom.Vec4 {
	c := texture.Sample(s.tex, s.sampler, in.Vec2(16))
	l := in.Float(24)
	return geom.V4(c.X*l, c.Y*l, c.Z*l, 1)
}

// checker draws a tiles x tiles checkerboard with 8 pixel squares.
func checker(tiles int) *image.NRGBA {
	const cell = 8
	img := image.NewNRGBA(image.Rect(0, 0, tiles*cell, tiles*cell))
	light := image.NewUniform(color.NRGBA{R: 236, G: 200, B: 120, A: 255})
	dark := image.NewUniform(color.NRGBA{R: 60, G: 90, B: 140, A: 255})
	for y := range tiles {
		for x := range tiles {
			src := light
			if (x+y)%2 == 1 {
				src = dark
			}
			r := image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell)
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}
	return img
}

func parseFilter(s string) (gputypes.FilterMode, error) {
	switch s {
	case "point", "nearest":
		return gputypes.FilterModeNearest, nil
	case "bilinear", "linear":
		return gputypes.FilterModeLinear, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

func parseAddress(s string) (gputypes.AddressMode, error) {
	switch s {
	case "clamp":
		return gputypes.AddressModeClampToEdge, nil
	case "wrap", "repeat":
		return gputypes.AddressModeRepeat, nil
	case "mirror":
		return gputypes.AddressModeMirrorRepeat, nil
	}
	return 0, fmt.Errorf("unknown address mode %q", s)
}

func parseCull(s string) (swrast.CullMode, error) {
	switch s {
	case "none":
		return swrast.CullNone, nil
	case "front":
		return swrast.CullFront, nil
	case "back":
		return swrast.CullBack, nil
	}
	return 0, fmt.Errorf("unknown cull mode %q", s)
}
