// Package swrast provides a CPU-only 3D triangle rendering pipeline.
//
// # Overview
//
// swrast is a Pure Go software rasterizer for the GoGPU ecosystem. It
// takes vertex buffers, runs a user vertex shader, clips the resulting
// triangles in homogeneous space, rasterizes them with edge functions and
// runs a user pixel shader per covered pixel, writing colors and depth into
// render targets held in plain memory.
//
// # Quick Start
//
//	dev := swrast.NewDevice()
//	defer dev.Destroy()
//
//	rt, _ := dev.AllocateResource(resource.Texture2DDescriptor(
//	    resource.FormatR8G8B8A8Unorm, 640, 480, resource.UsageRenderTarget))
//	_ = dev.BindRenderTargets([]*resource.Resource{rt}, nil)
//	_ = dev.SetViewports(swrast.NewViewport(640, 480))
//	_ = dev.BindVertexShader(vs)
//	_ = dev.BindPixelShader(ps)
//	_ = dev.DrawInstanced(3, 1, 0, 0)
//
//	_ = swrast.SavePNG(rt, "triangle.png", true)
//
// # Shaders
//
// Shaders are Go values implementing shader.VertexShader and
// shader.PixelShader. A vertex shader writes a record whose layout it
// declares, with the clip-space position at a fixed offset. A pixel shader
// declares which parts of that record are interpolated and how, and
// returns a color. Pixel shaders sample textures through the texture
// package.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Device, PipelineState, ToImage
//   - Leaf packages: geom (vectors, matrices), resource (formats, memory
//     blocks), shader (shader contracts, records), texture (sampling)
//   - Internal: memory (allocators), ia (input assembly, vertex stage),
//     clip (homogeneous clipper), raster (rasterizer, output merge)
//
// # Coordinate System
//
// Clip space follows Direct3D conventions: a vertex is visible when
// -w <= x <= w, -w <= y <= w and 0 <= z <= w. Screen row 0 corresponds to
// NDC y = -1; ToImage can flip rows for display.
//
// # Concurrency
//
// A Device is single-threaded. Each draw runs to completion before the
// call returns, and pixels are written in primitive order, then scan
// order.
package swrast

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
