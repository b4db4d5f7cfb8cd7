package swrast

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/internal/ia"
)

// Stats counts the work done by the last draw.
type Stats struct {
	Vertices         int // vertex shader outputs
	Triangles        int // triangles assembled
	ClipAccepted     int // triangles inside the view volume
	ClipClipped      int // triangles cut by at least one plane
	ClipCulled       int // triangles outside the view volume
	ClippedTriangles int // triangles leaving the clipper
	Culled           int // triangles rejected by winding, area or w
	Rasterized       int // triangles scanned
	Pixels           int // covered pixel centers
	DepthRejected    int // covered pixels that failed the depth test
	Shaded           int // pixels written
	VaryingOverflow  int // pixels skipped for lack of varying space
}

// Stats returns the counts of the last draw.
func (d *Device) Stats() Stats { return d.stats }

// DrawInstanced draws instanceCount instances of the triangle list made of
// vertexCount vertices starting at firstVertex. Trailing vertices that do
// not complete a triangle are ignored.
func (d *Device) DrawInstanced(vertexCount, instanceCount, firstVertex, firstInstance int) error {
	count := vertexCount - vertexCount%3
	pool, err := d.beginDraw(count, instanceCount)
	if err != nil || pool == nil {
		return err
	}
	for i := range instanceCount {
		if err := d.transformer.Transform(pool, firstVertex, count, firstInstance+i); err != nil {
			return fmt.Errorf("swrast: draw instance %d: %w", firstInstance+i, err)
		}
	}
	return d.endDraw(pool)
}

// DrawIndexedInstanced draws instanceCount instances of the triangle list
// made of indexCount indices starting at firstIndex in the bound index
// buffer. vertexOffset is added to every index.
func (d *Device) DrawIndexedInstanced(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if d.indexBuffer.Released() {
		return ErrNoIndexBuffer
	}
	count := indexCount - indexCount%3
	pool, err := d.beginDraw(count, instanceCount)
	if err != nil || pool == nil {
		return err
	}
	for i := range instanceCount {
		err := d.transformer.TransformIndexed(pool, d.indexBuffer, d.indexFormat, firstIndex, count, vertexOffset, firstInstance+i)
		if err != nil {
			return fmt.Errorf("swrast: draw instance %d: %w", firstInstance+i, err)
		}
	}
	return d.endDraw(pool)
}

// beginDraw validates the pipeline and returns an empty vertex pool sized
// for the draw. It returns a nil pool when there is nothing to draw.
func (d *Device) beginDraw(count, instances int) (*ia.VertexPool, error) {
	d.stats = Stats{}
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if d.state.Topology != gputypes.PrimitiveTopologyTriangleList {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTopology, d.state.Topology)
	}
	vs := d.transformer.Shader()
	if vs == nil {
		return nil, ErrNoVertexShader
	}
	if d.transformer.InputLayout() == nil {
		for slot := range ia.MaxSlots {
			if d.transformer.VertexBuffer(slot) != nil {
				return nil, ErrNoInputLayout
			}
		}
	}
	if _, ok := d.framebuffer.Bounds(); !ok {
		return nil, ErrNoRenderTarget
	}
	if d.state.Viewport.Area() == 0 {
		return nil, ErrInvalidViewport
	}
	if count < 0 || instances < 0 {
		return nil, fmt.Errorf("swrast: negative draw count %d x %d", count, instances)
	}
	if count > d.opts.vertexLimit {
		return nil, fmt.Errorf("%w: %d vertices per instance, limit %d", ErrPoolExhausted, count, d.opts.vertexLimit)
	}
	if count == 0 || instances == 0 {
		return nil, nil
	}
	layout := vs.Layout()
	if maxRecords := d.opts.vertexBudget / layout.Stride; instances > maxRecords/count {
		return nil, fmt.Errorf("%w: %d vertices x %d instances of %d bytes, budget %d bytes",
			ErrPoolExhausted, count, instances, layout.Stride, d.opts.vertexBudget)
	}
	return d.assembler.AvailablePool(count*instances, layout), nil
}

// endDraw clips and rasterizes the shaded vertices in pool.
func (d *Device) endDraw(pool *ia.VertexPool) error {
	d.stats.Vertices = pool.Len()
	d.stats.Triangles = pool.Len() / 3

	clipped := d.clipper.Clip(pool)
	cs := d.clipper.Stats()
	d.stats.ClipAccepted = cs.Accepted
	d.stats.ClipClipped = cs.Clipped
	d.stats.ClipCulled = cs.Culled
	d.stats.ClippedTriangles = cs.Out

	d.rasterizer.SetState(d.state.rasterState())
	d.rasterizer.SetViewport(d.state.Viewport)
	err := d.rasterizer.Raster(clipped)

	rs := d.rasterizer.Stats()
	d.stats.Culled = rs.Culled
	d.stats.Rasterized = rs.Rasterized
	d.stats.Pixels = rs.Covered
	d.stats.DepthRejected = rs.DepthRejected
	d.stats.Shaded = rs.Shaded
	d.stats.VaryingOverflow = rs.VaryingOverflow

	Logger().Debug("swrast: draw",
		"vertices", d.stats.Vertices,
		"triangles", d.stats.Triangles,
		"clipped", d.stats.ClipClipped,
		"clipCulled", d.stats.ClipCulled,
		"culled", d.stats.Culled,
		"shaded", d.stats.Shaded,
		"vertexArena", d.assembler.Size(),
		"varyingHeap", d.rasterizer.VaryingHeapSize())
	return err
}
