package swrast

import (
	"errors"

	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/internal/raster"
	"github.com/gogpu/swrast/resource"
)

// Errors returned by Device commands. Commands wrap them with context, so
// compare with errors.Is.
var (
	// ErrAllocationFailed is returned together with a nil resource when
	// the resource budget is exhausted.
	ErrAllocationFailed = resource.ErrAllocationFailed

	// ErrInvalidDescriptor is returned for descriptors that cannot be
	// allocated.
	ErrInvalidDescriptor = resource.ErrInvalidDescriptor

	// ErrReleased is returned when a released resource is used.
	ErrReleased = resource.ErrReleased

	// ErrUnsupportedFormat is returned when a format cannot be stored.
	ErrUnsupportedFormat = resource.ErrUnsupportedFormat

	// ErrInvalidSlot is returned when a vertex buffer slot is out of range
	// or a slot used by the input layout has no buffer.
	ErrInvalidSlot = ia.ErrSlotUnbound

	// ErrVertexOutOfRange is returned when a draw reads past the end of a
	// vertex or index buffer.
	ErrVertexOutOfRange = ia.ErrVertexOutOfRange

	// ErrPoolExhausted is returned when a draw submits more vertices than
	// the vertex pool holds.
	ErrPoolExhausted = ia.ErrPoolExhausted

	// ErrNoRenderTarget is returned when a draw or clear has no target.
	ErrNoRenderTarget = raster.ErrNoTarget

	// ErrNoVertexShader is returned by draws without a vertex shader.
	ErrNoVertexShader = errors.New("swrast: no vertex shader bound")

	// ErrNoInputLayout is returned by draws that bind vertex buffers but
	// no input layout.
	ErrNoInputLayout = errors.New("swrast: no input layout set")

	// ErrNoIndexBuffer is returned by indexed draws without an index buffer.
	ErrNoIndexBuffer = errors.New("swrast: no index buffer bound")

	// ErrUnsupportedTopology is returned for topologies other than
	// triangle lists.
	ErrUnsupportedTopology = errors.New("swrast: unsupported primitive topology")

	// ErrInvalidShader is returned when a shader declares an unusable
	// layout.
	ErrInvalidShader = errors.New("swrast: invalid shader layout")

	// ErrInvalidViewport is returned for missing or empty viewports.
	ErrInvalidViewport = errors.New("swrast: invalid viewport")

	// ErrDestroyed is returned by every command after Destroy.
	ErrDestroyed = errors.New("swrast: device destroyed")
)
