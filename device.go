package swrast

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/clip"
	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/internal/memory"
	"github.com/gogpu/swrast/internal/raster"
	"github.com/gogpu/swrast/resource"
	"github.com/gogpu/swrast/shader"
	"github.com/gogpu/swrast/texture"
)

// Device owns the pipeline state, the bound resources and shaders, and the
// scratch memory of the pipeline stages. Each draw runs the vertex stage,
// the clipper and the rasterizer to completion before returning.
//
// Every command returns nil on success. After Destroy every command
// returns ErrDestroyed.
//
// Thread safety: a Device is not safe for concurrent use.
type Device struct {
	opts      deviceOptions
	state     PipelineState
	heap      *memory.HeapAllocator
	resources map[*resource.Resource]struct{}

	assembler   *ia.Assembler
	transformer ia.Transformer
	clipper     *clip.Clipper
	framebuffer raster.Framebuffer
	rasterizer  *raster.Rasterizer

	indexBuffer *resource.Resource
	indexFormat gputypes.IndexFormat

	stats     Stats
	destroyed bool
}

// NewDevice creates a device with the given options.
//
// Example:
//
//	dev := swrast.NewDevice(swrast.WithResourceBudget(64 << 20))
//	defer dev.Destroy()
func NewDevice(opts ...DeviceOption) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Device{
		opts:      o,
		state:     o.state,
		heap:      memory.NewHeapAllocator(o.resourceBudget, 4),
		resources: make(map[*resource.Resource]struct{}),
		assembler: ia.NewAssembler(0),
		clipper:   clip.NewClipper(),
	}
	d.rasterizer = raster.New(&d.framebuffer)

	Logger().Info("swrast: device created",
		"resourceBudget", o.resourceBudget,
		"vertexLimit", o.vertexLimit,
		"maxVaryingBytes", o.maxVaryingBytes)
	return d
}

// Destroy releases every resource still allocated by the device and
// unbinds all state.
func (d *Device) Destroy() error {
	if d.destroyed {
		return ErrDestroyed
	}
	for res := range d.resources {
		_ = res.Release()
	}
	live := len(d.resources)
	clear(d.resources)

	d.transformer = ia.Transformer{}
	d.framebuffer = raster.Framebuffer{}
	d.indexBuffer = nil
	d.destroyed = true

	Logger().Info("swrast: device destroyed", "releasedResources", live, "heap", d.heap.Stats().Peak)
	return nil
}

// AllocateResource allocates a zeroed resource for desc. On failure the
// returned resource is nil.
func (d *Device) AllocateResource(desc resource.Descriptor) (*resource.Resource, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	res, err := resource.New(desc, d.heap)
	if err != nil {
		return nil, err
	}
	d.resources[res] = struct{}{}
	return res, nil
}

// ReleaseResource returns res to the device allocator. Resources still
// bound stay bound and behave as unbound.
func (d *Device) ReleaseResource(res *resource.Resource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if _, ok := d.resources[res]; !ok {
		Logger().Warn("swrast: release of unknown resource", "released", res.Released())
		return fmt.Errorf("%w: resource not allocated by this device", ErrReleased)
	}
	delete(d.resources, res)
	return res.Release()
}

// MapResource returns the payload of res for direct CPU access. The slice
// stays valid until res is released.
func (d *Device) MapResource(res *resource.Resource) ([]byte, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if res.Released() {
		return nil, ErrReleased
	}
	return res.Bytes(), nil
}

// UnmapResource ends CPU access started by MapResource.
func (d *Device) UnmapResource(res *resource.Resource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if res.Released() {
		return ErrReleased
	}
	return nil
}

// CreateSampler converts a WebGPU sampler descriptor for use by pixel
// shaders.
func (d *Device) CreateSampler(desc gputypes.SamplerDescriptor) (texture.Sampler, error) {
	if d.destroyed {
		return texture.Sampler{}, ErrDestroyed
	}
	for _, m := range []gputypes.AddressMode{desc.AddressModeU, desc.AddressModeV, desc.AddressModeW} {
		if m > gputypes.AddressModeMirrorRepeat {
			return texture.Sampler{}, fmt.Errorf("swrast: invalid address mode %d", m)
		}
	}
	if desc.MagFilter > gputypes.FilterModeLinear {
		return texture.Sampler{}, fmt.Errorf("swrast: invalid filter mode %d", desc.MagFilter)
	}
	return texture.NewSampler(desc), nil
}

// BindRenderTargets binds up to raster.MaxRenderTargets color targets and
// the depth target. A nil depth unbinds it.
func (d *Device) BindRenderTargets(colors []*resource.Resource, depth *resource.Resource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	for i, rt := range colors {
		if rt != nil && rt.Released() {
			return fmt.Errorf("%w: render target %d", ErrReleased, i)
		}
	}
	if err := d.framebuffer.BindRenderTargets(colors); err != nil {
		return err
	}
	return d.BindDepthStencil(depth)
}

// BindDepthStencil binds the depth target. Nil unbinds it.
func (d *Device) BindDepthStencil(depth *resource.Resource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if depth != nil {
		if depth.Released() {
			return fmt.Errorf("%w: depth stencil", ErrReleased)
		}
		if depth.Format() != resource.FormatR32Float {
			return fmt.Errorf("%w: depth stencil must be %s, got %s", ErrUnsupportedFormat, resource.FormatR32Float, depth.Format())
		}
	}
	d.framebuffer.BindDepthStencil(depth)
	return nil
}

// SetViewports sets the viewport. Only the first viewport is used.
func (d *Device) SetViewports(viewports ...Viewport) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if len(viewports) == 0 {
		return ErrInvalidViewport
	}
	vp := viewports[0]
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidViewport, vp.Width, vp.Height)
	}
	d.state.Viewport = vp
	return nil
}

// BindVertexBuffers binds buffers to consecutive slots starting at first.
func (d *Device) BindVertexBuffers(first int, buffers ...*resource.Resource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	return d.transformer.BindVertexBuffers(first, buffers)
}

// BindIndexBuffer binds the index buffer read by DrawIndexedInstanced.
func (d *Device) BindIndexBuffer(ib *resource.Resource, format gputypes.IndexFormat) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if ib != nil && format.Size() == 0 {
		return fmt.Errorf("%w: index format %s", ErrUnsupportedFormat, format)
	}
	d.indexBuffer = ib
	d.indexFormat = format
	return nil
}

// BindVertexShader binds vs. Nil unbinds it.
func (d *Device) BindVertexShader(vs shader.VertexShader) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if vs != nil {
		if err := vs.Layout().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidShader, err)
		}
	}
	d.transformer.BindShader(vs)
	return nil
}

// BindPixelShader binds ps. Nil unbinds it; draws then write transparent
// black.
func (d *Device) BindPixelShader(ps shader.PixelShader) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if ps != nil {
		if err := ps.Varyings().Validate(d.opts.maxVaryingBytes); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidShader, err)
		}
	}
	d.rasterizer.BindPixelShader(ps)
	return nil
}

// CreateInputLayout builds an input layout from elements.
func (d *Device) CreateInputLayout(elements []InputElement) (*InputLayout, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	return ia.NewInputLayout(elements)
}

// CreateInputLayoutFromWebGPU builds an input layout from WebGPU vertex
// attributes, one slice of attributes per buffer slot.
func (d *Device) CreateInputLayoutFromWebGPU(slots [][]gputypes.VertexAttribute) (*InputLayout, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	return ia.NewInputLayoutFromWebGPU(slots)
}

// SetInputLayout selects the layout used to read vertex buffers. Nil
// clears it; draws then run the vertex shader without input data.
func (d *Device) SetInputLayout(l *InputLayout) error {
	if d.destroyed {
		return ErrDestroyed
	}
	d.transformer.SetInputLayout(l)
	return nil
}

// SetCullMode sets which faces are discarded.
func (d *Device) SetCullMode(m CullMode) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if m > CullFrontAndBack {
		return fmt.Errorf("swrast: invalid cull mode %d", m)
	}
	d.state.CullMode = m
	return nil
}

// SetFrontFace sets the winding of front faces.
func (d *Device) SetFrontFace(f gputypes.FrontFace) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if f != gputypes.FrontFaceCCW && f != gputypes.FrontFaceCW {
		return fmt.Errorf("swrast: invalid front face %d", f)
	}
	d.state.FrontFace = f
	return nil
}

// SetDepthCompare sets the depth test function.
func (d *Device) SetDepthCompare(fn gputypes.CompareFunction) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if fn > gputypes.CompareFunctionAlways {
		return fmt.Errorf("swrast: invalid compare function %d", fn)
	}
	d.state.DepthCompare = fn
	return nil
}

// EnableDepth turns the depth test on or off.
func (d *Device) EnableDepth(enabled bool) error {
	if d.destroyed {
		return ErrDestroyed
	}
	d.state.DepthEnabled = enabled
	return nil
}

// EnableDepthWrite turns depth writes on or off. Writes also need the
// depth test and a bound depth target.
func (d *Device) EnableDepthWrite(enabled bool) error {
	if d.destroyed {
		return ErrDestroyed
	}
	d.state.DepthWriteEnabled = enabled
	return nil
}

// SetPrimitiveTopology sets how vertices form primitives. Only triangle
// lists are supported.
func (d *Device) SetPrimitiveTopology(t gputypes.PrimitiveTopology) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if t != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w: %s", ErrUnsupportedTopology, t)
	}
	d.state.Topology = t
	return nil
}

// State returns the current pipeline state.
func (d *Device) State() PipelineState { return d.state }

// SetState replaces the pipeline state.
func (d *Device) SetState(s PipelineState) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if s.Topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w: %s", ErrUnsupportedTopology, s.Topology)
	}
	d.state = s
	return nil
}

// ClearRenderTarget fills the given rectangles of color target slot with
// c, or the whole target when no rectangle is given.
func (d *Device) ClearRenderTarget(slot int, c gputypes.Color, rects ...resource.Rect) error {
	if d.destroyed {
		return ErrDestroyed
	}
	rt := d.framebuffer.Target(slot)
	if rt.Released() {
		return fmt.Errorf("%w: render target %d", ErrNoRenderTarget, slot)
	}
	color := geom.V4(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	for _, rc := range fullRect(rt, rects) {
		if err := d.framebuffer.ClearRenderTarget(slot, rc, color); err != nil {
			return err
		}
	}
	return nil
}

// ClearDepthStencil fills the given rectangles of the depth target with
// depth, or the whole target when no rectangle is given.
func (d *Device) ClearDepthStencil(depth float32, rects ...resource.Rect) error {
	if d.destroyed {
		return ErrDestroyed
	}
	ds := d.framebuffer.DepthStencil()
	if ds.Released() {
		return fmt.Errorf("%w: depth stencil", ErrNoRenderTarget)
	}
	for _, rc := range fullRect(ds, rects) {
		if err := d.framebuffer.ClearDepthStencil(rc, depth); err != nil {
			return err
		}
	}
	return nil
}

func fullRect(res *resource.Resource, rects []resource.Rect) []resource.Rect {
	if len(rects) > 0 {
		return rects
	}
	return []resource.Rect{{Width: res.Width(), Height: res.Height()}}
}
