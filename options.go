package swrast

import (
	"math"

	"github.com/gogpu/swrast/internal/memory"
)

// DeviceOption configures a Device during creation.
// Use functional options to customize Device behavior.
//
// Example:
//
//	// Default device: unlimited resource memory
//	dev := swrast.NewDevice()
//
//	// 64 MiB of resource memory, 4096 vertices per instance
//	dev := swrast.NewDevice(
//	    swrast.WithResourceBudget(64<<20),
//	    swrast.WithVertexPoolLimit(4096),
//	)
type DeviceOption func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	resourceBudget  int
	vertexLimit     int
	vertexBudget    int
	maxVaryingBytes int
	state           PipelineState
}

// defaultOptions returns the default device options.
func defaultOptions() deviceOptions {
	return deviceOptions{
		resourceBudget:  0, // unlimited
		vertexLimit:     math.MaxUint16,
		vertexBudget:    256 * memory.MB,
		maxVaryingBytes: 256,
		state:           DefaultPipelineState(),
	}
}

// WithResourceBudget caps the bytes held by live resources. Allocations
// beyond the budget return a nil resource and ErrAllocationFailed. Zero
// means unlimited.
func WithResourceBudget(bytes int) DeviceOption {
	return func(o *deviceOptions) {
		o.resourceBudget = max(bytes, 0)
	}
}

// WithVertexPoolLimit sets the largest vertex or index count a single
// instance of a draw may submit.
func WithVertexPoolLimit(n int) DeviceOption {
	return func(o *deviceOptions) {
		if n > 0 {
			o.vertexLimit = n
		}
	}
}

// WithVertexPoolBudget caps the bytes of shaded vertices a single draw,
// all instances included, may produce. Larger draws fail with
// ErrPoolExhausted before any vertex is shaded.
func WithVertexPoolBudget(bytes int) DeviceOption {
	return func(o *deviceOptions) {
		if bytes > 0 {
			o.vertexBudget = bytes
		}
	}
}

// WithMaxVaryingBytes sets the largest varying record a pixel shader may
// declare. The varying heap of each draw is sized from it.
func WithMaxVaryingBytes(n int) DeviceOption {
	return func(o *deviceOptions) {
		if n > 0 {
			o.maxVaryingBytes = n
		}
	}
}

// WithDefaultState sets the pipeline state the device starts with.
func WithDefaultState(s PipelineState) DeviceOption {
	return func(o *deviceOptions) {
		o.state = s
	}
}
