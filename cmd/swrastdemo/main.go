// Command swrastdemo renders a spinning textured cube with the software
// rasterizer and writes each frame as a PNG.
//
// Usage:
//
//	swrastdemo [-scene scene.yaml] [-width 160] [-height 120] [-frames 24] [-out frames] [-v]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/gogpu/swrast"
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swrastdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	scenePath := flag.String("scene", "", "YAML scene file")
	width := flag.Int("width", 0, "render width in pixels")
	height := flag.Int("height", 0, "render height in pixels")
	frames := flag.Int("frames", 0, "frames per turn")
	scale := flag.Int("scale", 0, "integer upscale of saved frames")
	out := flag.String("out", "", "output directory")
	verbose := flag.Bool("v", false, "log pipeline activity to stderr")
	flag.Parse()

	scene := DefaultScene()
	if *scenePath != "" {
		var err error
		if scene, err = LoadScene(*scenePath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			scene.Width = *width
		case "height":
			scene.Height = *height
		case "frames":
			scene.Frames = *frames
		case "scale":
			scene.Scale = *scale
		case "out":
			scene.Output = *out
		}
	})
	if err := scene.Validate(); err != nil {
		return err
	}

	if *verbose {
		swrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := os.MkdirAll(scene.Output, 0o755); err != nil {
		return err
	}

	r, err := newRenderer(scene)
	if err != nil {
		return err
	}
	defer r.dev.Destroy()

	var bar *progressbar.ProgressBar
	if !*verbose && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.NewOptions(scene.Frames,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
	}

	for i := range scene.Frames {
		angle := 2 * math.Pi * float32(i) / float32(scene.Frames)
		img, err := r.frame(angle)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := filepath.Join(scene.Output, fmt.Sprintf("frame_%03d.png", i))
		if err := writePNG(path, img, scene.Scale); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	st := r.dev.Stats()
	fmt.Printf("wrote %d frames to %s (last frame: %d triangles, %d culled, %d pixels shaded)\n",
		scene.Frames, scene.Output, st.Triangles, st.Culled, st.Shaded)
	return nil
}

// renderer owns the device and the per-scene resources.
type renderer struct {
	scene  Scene
	dev    *swrast.Device
	target *resource.Resource
	vs     *cubeShader
	count  int
}

func newRenderer(scene Scene) (*renderer, error) {
	filter, _ := parseFilter(scene.Filter)
	address, _ := parseAddress(scene.Address)
	cull, _ := parseCull(scene.Cull)

	dev := swrast.NewDevice(swrast.WithResourceBudget(64 << 20))
	r := &renderer{scene: scene, dev: dev}
	fail := func(err error) (*renderer, error) {
		dev.Destroy()
		return nil, err
	}

	target, err := dev.AllocateResource(resource.Texture2DDescriptor(
		resource.FormatR8G8B8A8Unorm, scene.Width, scene.Height, resource.UsageRenderTarget))
	if err != nil {
		return fail(err)
	}
	depth, err := dev.AllocateResource(resource.Texture2DDescriptor(
		resource.FormatR32Float, scene.Width, scene.Height, resource.UsageDepthStencil))
	if err != nil {
		return fail(err)
	}
	if err := dev.BindRenderTargets([]*resource.Resource{target}, depth); err != nil {
		return fail(err)
	}
	if err := dev.SetViewports(swrast.NewViewport(scene.Width, scene.Height)); err != nil {
		return fail(err)
	}
	r.target = target

	vertices, indices := cubeMesh(scene.Repeat)
	vb, err := dev.AllocateResource(resource.BufferDescriptor(len(vertices), resource.UsageVertexBuffer))
	if err != nil {
		return fail(err)
	}
	if err := vb.UpdateData(vertices); err != nil {
		return fail(err)
	}
	ib, err := dev.AllocateResource(resource.BufferDescriptor(len(indices), resource.UsageIndexBuffer))
	if err != nil {
		return fail(err)
	}
	if err := ib.UpdateData(indices); err != nil {
		return fail(err)
	}
	r.count = len(indices) / 2

	layout, err := dev.CreateInputLayoutFromWebGPU([][]gputypes.VertexAttribute{cubeAttributes})
	if err != nil {
		return fail(err)
	}

	tex, err := dev.CreateTextureFromImage(checker(scene.Tiles), resource.UsageShaderResource)
	if err != nil {
		return fail(err)
	}
	sampler, err := dev.CreateSampler(gputypes.SamplerDescriptor{
		AddressModeU: address,
		AddressModeV: address,
		AddressModeW: address,
		MagFilter:    filter,
		MinFilter:    filter,
	})
	if err != nil {
		return fail(err)
	}

	r.vs = &cubeShader{light: geom.V3(-0.4, 0.8, -0.6).Normalize()}
	steps := []error{
		dev.SetInputLayout(layout),
		dev.BindVertexBuffers(0, vb),
		dev.BindIndexBuffer(ib, gputypes.IndexFormatUint16),
		dev.BindVertexShader(r.vs),
		dev.BindPixelShader(&texturedShader{tex: tex, sampler: sampler}),
		dev.SetCullMode(cull),
		dev.SetFrontFace(gputypes.FrontFaceCCW),
		dev.EnableDepth(true),
		dev.EnableDepthWrite(true),
	}
	for _, err := range steps {
		if err != nil {
			return fail(err)
		}
	}
	return r, nil
}

// frame renders the cube rotated by angle radians.
func (r *renderer) frame(angle float32) (*image.NRGBA, error) {
	s := r.scene
	model := geom.Rotate(geom.V3(0, 1, 0), angle).Mul(geom.Rotate(geom.V3(1, 0, 0), angle/2))
	view := geom.LookAtLH(geom.V3(0, s.Camera.Height, -s.Camera.Distance), geom.V3(0, 0, 0), geom.V3(0, 1, 0))
	proj := geom.PerspectiveLH(geom.DegToRad(s.FOV), float32(s.Width)/float32(s.Height), 0.1, 100)
	r.vs.model = model
	r.vs.mvp = proj.Mul(view).Mul(model)

	bg := gputypes.Color{R: s.Background[0], G: s.Background[1], B: s.Background[2], A: s.Background[3]}
	if err := r.dev.ClearRenderTarget(0, bg); err != nil {
		return nil, err
	}
	if err := r.dev.ClearDepthStencil(1); err != nil {
		return nil, err
	}
	if err := r.dev.DrawIndexedInstanced(r.count, 1, 0, 0, 0); err != nil {
		return nil, err
	}
	return swrast.ToImage(r.target, true)
}

// writePNG upscales img by an integer factor and encodes it to path.
func writePNG(path string, img *image.NRGBA, scale int) error {
	var src image.Image = img
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		src = dst
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
