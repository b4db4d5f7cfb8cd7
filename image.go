package swrast

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
)

// ToImage converts slice 0 of res to an image.NRGBA. Each element is
// decoded per the resource format and quantized to 8 bits per channel.
// Rows are stored bottom-up in render targets, so pass flipY to get the
// usual top-down orientation.
func ToImage(res *resource.Resource, flipY bool) (*image.NRGBA, error) {
	if res.Released() {
		return nil, ErrReleased
	}
	w, h := res.Width(), res.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		dy := y
		if flipY {
			dy = h - 1 - y
		}
		for x := range w {
			img.SetNRGBA(x, dy, toNRGBA(res.Load(x, y, 0)))
		}
	}
	return img, nil
}

func toNRGBA(v geom.Vec4) color.NRGBA {
	q := func(f float32) uint8 { return uint8(geom.Clamp(f, 0, 1)*255 + 0.5) }
	return color.NRGBA{R: q(v.X), G: q(v.Y), B: q(v.Z), A: q(v.W)}
}

// SavePNG saves slice 0 of res to a PNG file.
func SavePNG(res *resource.Resource, path string, flipY bool) error {
	img, err := ToImage(res, flipY)
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, img)
}

// CreateTextureFromImage allocates an RGBA8 2D texture holding img.
// Image row 0 becomes texture row 0.
func (d *Device) CreateTextureFromImage(img image.Image, usage resource.Usage) (*resource.Resource, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	desc := resource.Texture2DDescriptor(resource.FormatR8G8B8A8Unorm, width, height, usage)
	tex, err := d.AllocateResource(desc)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			data = append(data, c.R, c.G, c.B, c.A)
		}
	}
	if err := tex.UpdateData(data); err != nil {
		_ = d.ReleaseResource(tex)
		return nil, err
	}
	return tex, nil
}
