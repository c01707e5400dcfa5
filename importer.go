package pixelframe

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/bodgit/pixelframe/palette"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// Import reads the image at file, scales it to the size of the named
// frame and maps it onto the palette, replacing every pixel. The
// nearest color match happens here; the frame itself only ever accepts
// exact palette colors.
func (m *PixelFrame) Import(name, file string) error {
	f, err := m.load(name)
	if err != nil {
		return err
	}

	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		return err
	}

	size := int(f.Size())
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	// Reduce to at most four colors first so the nearest palette match
	// works on flat areas rather than per-pixel noise
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(scaled.Bounds(), q.Quantize(make(color.Palette, 0, palette.Size), scaled))
	draw.Draw(pm, pm.Bounds(), scaled, image.Point{}, draw.Src)

	canonical := palette.Colors()
	total := size * size
	xs := make([]uint8, 0, total)
	ys := make([]uint8, 0, total)
	indices := make([]uint8, 0, total)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			xs = append(xs, uint8(x))
			ys = append(ys, uint8(y))
			indices = append(indices, uint8(canonical.Index(pm.At(x, y))))
		}
	}

	if err := f.SetPixels(xs, ys, indices); err != nil {
		return err
	}

	return m.db.Save(name, f)
}

// Export writes the named frame to w as a PNG, scaled up by the given
// integer factor with no interpolation.
func (m *PixelFrame) Export(w io.Writer, name string, scale int) error {
	f, err := m.db.Load(name)
	if err != nil {
		return err
	}
	if scale < 1 {
		scale = 1
	}

	size := int(f.Size())
	dst := image.NewRGBA(image.Rect(0, 0, size*scale, size*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), f, f.Bounds(), draw.Src, nil)

	return png.Encode(w, dst)
}
