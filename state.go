package swrast

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/internal/raster"
)

// Viewport maps normalized device coordinates to render target pixels.
type Viewport = raster.Viewport

// NewViewport returns a full-depth viewport of w x h at the origin.
func NewViewport(w, h int) Viewport { return raster.NewViewport(w, h) }

// CullMode selects which triangle faces are discarded.
type CullMode = raster.CullMode

// Cull modes.
const (
	CullNone         = raster.CullNone
	CullFront        = raster.CullFront
	CullBack         = raster.CullBack
	CullFrontAndBack = raster.CullFrontAndBack
)

// InputElement declares one vertex attribute read from a buffer slot.
type InputElement = ia.InputElement

// InputLayout maps vertex buffer slots to their strides.
type InputLayout = ia.InputLayout

// PipelineState is the fixed-function state read by each draw.
type PipelineState struct {
	Viewport          Viewport
	CullMode          CullMode
	FrontFace         gputypes.FrontFace
	DepthCompare      gputypes.CompareFunction
	DepthEnabled      bool
	DepthWriteEnabled bool
	Topology          gputypes.PrimitiveTopology
}

// DefaultPipelineState returns no culling, counter-clockwise front faces,
// a less depth test with depth test and writes off, and triangle lists.
// The viewport is empty until SetViewports is called.
func DefaultPipelineState() PipelineState {
	s := raster.DefaultState()
	return PipelineState{
		CullMode:     s.CullMode,
		FrontFace:    s.FrontFace,
		DepthCompare: s.DepthCompare,
		Topology:     gputypes.PrimitiveTopologyTriangleList,
	}
}

// rasterState extracts the part of s the rasterizer reads.
func (s PipelineState) rasterState() raster.State {
	return raster.State{
		CullMode:          s.CullMode,
		FrontFace:         s.FrontFace,
		DepthCompare:      s.DepthCompare,
		DepthEnabled:      s.DepthEnabled,
		DepthWriteEnabled: s.DepthWriteEnabled,
	}
}
