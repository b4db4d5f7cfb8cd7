package swrast

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
	"github.com/gogpu/swrast/shader"
)

func TestDrawTriangleCoverage(t *testing.T) {
	dev, rt := newTestDevice(t)
	if err := dev.ClearRenderTarget(0, gputypes.Color{B: 1, A: 1}); err != nil {
		t.Fatal(err)
	}

	// Screen corners (0.5,0.5), (2.5,0.5), (0.5,2.5): a 3x3 region whose
	// hypotenuse crosses three pixel centers and is not a top-left edge.
	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatalf("DrawInstanced: %v", err)
	}

	want := map[[2]int]geom.Vec4{{0, 0}: red, {1, 0}: red, {0, 1}: red}
	got := pixels(rt, blue)
	if len(got) != len(want) {
		t.Errorf("changed pixels = %v, want %v", got, want)
	}
	for p, c := range want {
		if got[p] != c {
			t.Errorf("pixel %v = %v, want %v", p, got[p], c)
		}
	}

	s := dev.Stats()
	if s.Vertices != 3 || s.Triangles != 1 || s.ClipAccepted != 1 || s.Rasterized != 1 || s.Shaded != 3 {
		t.Errorf("stats = %+v", s)
	}
}

func TestDrawQuadCoversBlock(t *testing.T) {
	dev, rt := newTestDevice(t)
	if err := dev.ClearRenderTarget(0, gputypes.Color{B: 1, A: 1}); err != nil {
		t.Fatal(err)
	}

	// Screen corners (0.5,0.5) and (3.5,3.5). The left and bottom edges
	// pass through pixel centers and are included; the right and top
	// edges are not, and the shared diagonal belongs to one triangle.
	a, b := geom.V4(-1, -1, 0, 1), geom.V4(0.5, -1, 0, 1)
	c, d := geom.V4(0.5, 0.5, 0, 1), geom.V4(-1, 0.5, 0, 1)
	bindVertices(t, dev, tri(red, a, b, c, a, c, d)...)
	if err := dev.DrawInstanced(6, 1, 0, 0); err != nil {
		t.Fatalf("DrawInstanced: %v", err)
	}

	got := pixels(rt, blue)
	for y := range 4 {
		for x := range 4 {
			p := [2]int{x, y}
			inBlock := x < 3 && y < 3
			switch col, ok := got[p]; {
			case inBlock && col != red:
				t.Errorf("pixel %v = %v, want %v", p, col, red)
			case !inBlock && ok:
				t.Errorf("pixel %v = %v, want the clear color", p, col)
			}
		}
	}
	if s := dev.Stats(); s.Shaded != 9 || s.Rasterized != 2 {
		t.Errorf("stats = %+v, want 9 pixels shaded by 2 triangles", s)
	}
}

func TestDrawOversizedViewport(t *testing.T) {
	dev, rt := newTestDevice(t)
	if err := dev.SetViewports(Viewport{Width: 1e7, Height: 1e7, Far: 1}); err != nil {
		t.Fatal(err)
	}
	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatalf("DrawInstanced: %v", err)
	}
	if got := len(pixels(rt, black)); got != 16 {
		t.Errorf("covered %d pixels, want the whole 4x4 target", got)
	}
	if got, limit := dev.rasterizer.VaryingHeapSize(), 16*32; got > limit {
		t.Errorf("varying heap = %d bytes, want at most %d", got, limit)
	}
}

func TestDrawCenterPixel(t *testing.T) {
	dev, rt := newTestDevice(t)
	bindVertices(t, dev, tri(green,
		geom.V4(0, 0, 0.5, 2),
		geom.V4(2, 0, 0.5, 2),
		geom.V4(0, 2, 0.5, 2),
	)...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	// The first vertex lands on the center of pixel (2,2).
	if got := rt.Load(2, 2, 0); got != green {
		t.Errorf("center pixel = %v, want %v", got, green)
	}
	if got := rt.Load(1, 1, 0); got != black {
		t.Errorf("pixel (1,1) = %v, want untouched", got)
	}
}

func TestDrawCullToggle(t *testing.T) {
	a, b, c := geom.V4(-1, -1, 0, 1), geom.V4(1, -1, 0, 1), geom.V4(-1, 1, 0, 1)
	verts := append(tri(red, a, b, c), tri(green, a, c, b)...)

	tests := []struct {
		cull CullMode
		want geom.Vec4
	}{
		{CullBack, red},
		{CullFront, green},
		{CullNone, green}, // last write wins without depth
	}
	for _, tt := range tests {
		t.Run(tt.cull.String(), func(t *testing.T) {
			dev, rt := newTestDevice(t)
			bindVertices(t, dev, verts...)
			if err := dev.SetCullMode(tt.cull); err != nil {
				t.Fatal(err)
			}
			if err := dev.DrawInstanced(len(verts), 1, 0, 0); err != nil {
				t.Fatal(err)
			}
			if got := rt.Load(0, 0, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawIndexed(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.IndexFormat
	}{
		{"uint16", gputypes.IndexFormatUint16},
		{"uint32", gputypes.IndexFormatUint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, rt := newTestDevice(t)
			bindVertices(t, dev, tri(red,
				geom.V4(-1, -1, 0, 1),
				geom.V4(1, -1, 0, 1),
				geom.V4(1, 1, 0, 1),
				geom.V4(-1, 1, 0, 1),
			)...)

			indices := []uint32{0, 1, 2, 0, 2, 3}
			size := int(tt.format.Size())
			ib, err := dev.AllocateResource(resource.BufferDescriptor(size*len(indices), resource.UsageIndexBuffer))
			if err != nil {
				t.Fatal(err)
			}
			data, _ := dev.MapResource(ib)
			for i, idx := range indices {
				if size == 2 {
					binary.LittleEndian.PutUint16(data[2*i:], uint16(idx))
				} else {
					binary.LittleEndian.PutUint32(data[4*i:], idx)
				}
			}
			if err := dev.BindIndexBuffer(ib, tt.format); err != nil {
				t.Fatal(err)
			}

			if err := dev.DrawIndexedInstanced(len(indices), 1, 0, 0, 0); err != nil {
				t.Fatalf("DrawIndexedInstanced: %v", err)
			}
			if got := len(pixels(rt, black)); got != 16 {
				t.Errorf("covered %d pixels, want 16", got)
			}
			if got := dev.Stats().Shaded; got != 16 {
				t.Errorf("shaded %d pixels, want 16 (shared edge drawn once)", got)
			}
		})
	}
}

func TestDrawIndexedVertexOffset(t *testing.T) {
	dev, rt := newTestDevice(t)
	// Vertex 0 is a dummy; indices 0..2 offset by 1 select the triangle.
	bindVertices(t, dev, append(
		tri(blue, geom.V4(9, 9, 9, 1)),
		tri(green, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...,
	)...)
	ib, err := dev.AllocateResource(resource.BufferDescriptor(6, resource.UsageIndexBuffer))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := dev.MapResource(ib)
	for i := range 3 {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(i))
	}
	if err := dev.BindIndexBuffer(ib, gputypes.IndexFormatUint16); err != nil {
		t.Fatal(err)
	}
	if err := dev.DrawIndexedInstanced(3, 1, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	if got := rt.Load(0, 0, 0); got != green {
		t.Errorf("pixel = %v, want %v", got, green)
	}
}

func TestDrawInstanced(t *testing.T) {
	dev, rt := newTestDevice(t)
	// Each instance moves one NDC unit, two pixels, to the right.
	shifted := shader.VertexFunc(posColor, func(in shader.VertexInput, out shader.Record) {
		p := in.Data.Vec4(0)
		p.X += float32(in.InstanceID)
		out.SetVec4(0, p)
		out.SetVec4(16, in.Data.Vec4(16))
	})
	if err := dev.BindVertexShader(shifted); err != nil {
		t.Fatal(err)
	}
	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)

	if err := dev.DrawInstanced(3, 2, 0, 0); err != nil {
		t.Fatal(err)
	}
	got := pixels(rt, black)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {2, 0}, {3, 0}, {2, 1}} {
		if got[p] != red {
			t.Errorf("pixel %v = %v, want %v", p, got[p], red)
		}
	}
	if len(got) != 6 {
		t.Errorf("covered %d pixels, want 6", len(got))
	}
	if s := dev.Stats(); s.Vertices != 6 || s.Triangles != 2 {
		t.Errorf("stats = %+v, want 6 vertices 2 triangles", s)
	}
}

func TestDrawClipsNearPlane(t *testing.T) {
	dev, rt := newTestDevice(t)
	bindVertices(t, dev, tri(red,
		geom.V4(-1, -1, 0.5, 1),
		geom.V4(1, -1, 0.5, 1),
		geom.V4(-1, 1, -0.5, 1),
	)...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	s := dev.Stats()
	if s.ClipClipped != 1 || s.ClippedTriangles < 1 || s.ClippedTriangles > 2 {
		t.Errorf("stats = %+v, want one triangle clipped into one or two", s)
	}
	if got := rt.Load(0, 0, 0); got != red {
		t.Errorf("pixel in front of the near plane = %v, want %v", got, red)
	}
	if got := rt.Load(0, 3, 0); got != black {
		t.Errorf("pixel behind the near plane = %v, want untouched", got)
	}
}

func TestDrawOutsideViewVolume(t *testing.T) {
	dev, rt := newTestDevice(t)
	bindVertices(t, dev, tri(red, geom.V4(2, 2, 0, 1), geom.V4(3, 2, 0, 1), geom.V4(2, 3, 0, 1))...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if s := dev.Stats(); s.ClipCulled != 1 || s.ClippedTriangles != 0 {
		t.Errorf("stats = %+v, want the triangle culled by the clipper", s)
	}
	if got := len(pixels(rt, black)); got != 0 {
		t.Errorf("covered %d pixels, want 0", got)
	}
}

func TestDrawDepth(t *testing.T) {
	quad := func(z float32, c geom.Vec4) []vertex {
		a, b := geom.V4(-1, -1, z, 1), geom.V4(1, -1, z, 1)
		cc, d := geom.V4(1, 1, z, 1), geom.V4(-1, 1, z, 1)
		return tri(c, a, b, cc, a, cc, d)
	}

	tests := []struct {
		name    string
		compare gputypes.CompareFunction
		clear   float32
		want    geom.Vec4
	}{
		{"less keeps nearest", gputypes.CompareFunctionLess, 1, green},
		{"greater keeps farthest", gputypes.CompareFunctionGreater, 0, red},
		{"less equal", gputypes.CompareFunctionLessEqual, 1, green},
		{"never", gputypes.CompareFunctionNever, 1, black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, rt := newTestDevice(t)
			depth, err := dev.AllocateResource(resource.Texture2DDescriptor(resource.FormatR32Float, 4, 4, resource.UsageDepthStencil))
			if err != nil {
				t.Fatal(err)
			}
			for _, err := range []error{
				dev.BindDepthStencil(depth),
				dev.ClearDepthStencil(tt.clear),
				dev.EnableDepth(true),
				dev.EnableDepthWrite(true),
				dev.SetDepthCompare(tt.compare),
			} {
				if err != nil {
					t.Fatal(err)
				}
			}

			bindVertices(t, dev, append(quad(0.8, red), quad(0.2, green)...)...)
			if err := dev.DrawInstanced(12, 1, 0, 0); err != nil {
				t.Fatal(err)
			}
			if got := rt.Load(2, 1, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawDepthWriteNeedsDepthTest(t *testing.T) {
	dev, _ := newTestDevice(t)
	depth, err := dev.AllocateResource(resource.Texture2DDescriptor(resource.FormatR32Float, 4, 4, resource.UsageDepthStencil))
	if err != nil {
		t.Fatal(err)
	}
	_ = dev.BindDepthStencil(depth)
	_ = dev.ClearDepthStencil(1)
	_ = dev.EnableDepthWrite(true)

	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(1, -1, 0, 1), geom.V4(-1, 1, 0, 1))...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := depth.Load(0, 0, 0).X; got != 1 {
		t.Errorf("depth = %v, want 1 (unchanged)", got)
	}
}

func TestDrawWithoutPixelShader(t *testing.T) {
	dev, rt := newTestDevice(t)
	_ = dev.ClearRenderTarget(0, gputypes.Color{R: 1, G: 1, B: 1, A: 1})
	_ = dev.BindPixelShader(nil)
	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := rt.Load(0, 0, 0); got != black {
		t.Errorf("pixel = %v, want transparent black", got)
	}
}

func TestDrawWithoutInputLayout(t *testing.T) {
	dev, rt := newTestDevice(t)
	_ = dev.SetInputLayout(nil)
	_ = dev.BindVertexBuffers(0, nil)

	// Procedural vertices from the vertex index alone.
	corners := []geom.Vec4{geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1)}
	procedural := shader.VertexFunc(posColor, func(in shader.VertexInput, out shader.Record) {
		out.SetVec4(0, corners[in.VertexID])
		out.SetVec4(16, blue)
	})
	if err := dev.BindVertexShader(procedural); err != nil {
		t.Fatal(err)
	}
	if err := dev.DrawInstanced(3, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := rt.Load(0, 0, 0); got != blue {
		t.Errorf("pixel = %v, want %v", got, blue)
	}
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  []DeviceOption
		setup func(dev *Device)
		draw  func(dev *Device) error
		want  error
	}{
		{
			name:  "no vertex shader",
			setup: func(dev *Device) { _ = dev.BindVertexShader(nil) },
			want:  ErrNoVertexShader,
		},
		{
			name:  "no render target",
			setup: func(dev *Device) { _ = dev.BindRenderTargets(nil, nil) },
			want:  ErrNoRenderTarget,
		},
		{
			name:  "no input layout",
			setup: func(dev *Device) { _ = dev.SetInputLayout(nil) },
			want:  ErrNoInputLayout,
		},
		{
			name: "unsupported topology",
			setup: func(dev *Device) {
				s := dev.State()
				s.Topology = gputypes.PrimitiveTopologyPointList
				dev.state = s
			},
			want: ErrUnsupportedTopology,
		},
		{
			name: "pool limit",
			opts: []DeviceOption{WithVertexPoolLimit(2)},
			want: ErrPoolExhausted,
		},
		{
			name: "instances past the vertex pool budget",
			draw: func(dev *Device) error { return dev.DrawInstanced(3, math.MaxInt32, 0, 0) },
			want: ErrPoolExhausted,
		},
		{
			name: "vertex times instance count overflows",
			draw: func(dev *Device) error { return dev.DrawInstanced(math.MaxUint16, math.MaxInt, 0, 0) },
			want: ErrPoolExhausted,
		},
		{
			name: "small vertex pool budget",
			opts: []DeviceOption{WithVertexPoolBudget(64)},
			want: ErrPoolExhausted,
		},
		{
			name:  "unbound slot",
			setup: func(dev *Device) { _ = dev.BindVertexBuffers(0, nil) },
			want:  ErrInvalidSlot,
		},
		{
			name: "vertex out of range",
			draw: func(dev *Device) error { return dev.DrawInstanced(3, 1, 2, 0) },
			want: ErrVertexOutOfRange,
		},
		{
			name: "no index buffer",
			draw: func(dev *Device) error { return dev.DrawIndexedInstanced(3, 1, 0, 0, 0) },
			want: ErrNoIndexBuffer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, _ := newTestDevice(t, tt.opts...)
			bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)
			if tt.setup != nil {
				tt.setup(dev)
			}
			draw := tt.draw
			if draw == nil {
				draw = func(dev *Device) error { return dev.DrawInstanced(3, 1, 0, 0) }
			}
			if err := draw(dev); !errors.Is(err, tt.want) {
				t.Errorf("draw = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawNothing(t *testing.T) {
	dev, rt := newTestDevice(t)
	bindVertices(t, dev, tri(red, geom.V4(-1, -1, 0, 1), geom.V4(0, -1, 0, 1), geom.V4(-1, 0, 0, 1))...)
	for _, args := range [][4]int{{0, 1, 0, 0}, {3, 0, 0, 0}, {2, 1, 0, 0}} {
		if err := dev.DrawInstanced(args[0], args[1], args[2], args[3]); err != nil {
			t.Errorf("DrawInstanced%v: %v", args, err)
		}
	}
	if got := len(pixels(rt, black)); got != 0 {
		t.Errorf("covered %d pixels, want 0", got)
	}
}

func BenchmarkDrawQuad(b *testing.B) {
	dev := NewDevice()
	defer func() { _ = dev.Destroy() }()

	rt, _ := dev.AllocateResource(resource.Texture2DDescriptor(resource.FormatR8G8B8A8Unorm, 256, 256, resource.UsageRenderTarget))
	layout, _ := dev.CreateInputLayout([]InputElement{
		{Format: resource.FormatR32G32B32A32Float, Offset: 0},
		{Format: resource.FormatR32G32B32A32Float, Offset: 16},
	})
	_ = dev.BindRenderTargets([]*resource.Resource{rt}, nil)
	_ = dev.SetViewports(NewViewport(256, 256))
	_ = dev.SetInputLayout(layout)
	_ = dev.BindVertexShader(passthrough())
	_ = dev.BindPixelShader(flatColor())

	verts := tri(red,
		geom.V4(-1, -1, 0, 1), geom.V4(1, -1, 0, 1), geom.V4(1, 1, 0, 1),
		geom.V4(-1, -1, 0, 1), geom.V4(1, 1, 0, 1), geom.V4(-1, 1, 0, 1),
	)
	vb, _ := dev.AllocateResource(resource.BufferDescriptor(32*len(verts), resource.UsageVertexBuffer))
	data, _ := dev.MapResource(vb)
	for i, v := range verts {
		rec := shader.Record(data[32*i : 32*(i+1)])
		rec.SetVec4(0, v.pos)
		rec.SetVec4(16, v.color)
	}
	_ = dev.BindVertexBuffers(0, vb)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dev.DrawInstanced(len(verts), 1, 0, 0)
	}
}
