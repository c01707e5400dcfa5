/*
Package render produces read-only views of a frame; a plain text grid
for terminals and an SVG document for everything else. Both are built
from the frame's public read surface only.
*/
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/pixelframe/frame"
	"github.com/bodgit/pixelframe/palette"
)

// One glyph per palette index, in palette order.
var glyphs = [palette.Size]byte{'.', '#', 'P', 'B'}

// ASCII renders f as one character per pixel and one line per row. An
// empty frame renders as the empty string.
func ASCII(f *frame.Frame) string {
	size := int(f.Size())
	if size == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(size * (size + 1))
	for i, index := range f.Indices() {
		sb.WriteByte(glyphs[index])
		if (i+1)%size == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

const (
	svgOpen  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">` + "\n"
	svgRect  = `<rect x="%d" y="%d" width="%d" height="%d" fill="#%06x"/>` + "\n"
	svgClose = "</svg>\n"
)

// SVG writes f to w as an SVG document, one square of scale by scale
// units per pixel. The background is drawn as a single rect in the
// first palette color so only non-default pixels need their own
// element. Output is deterministic for a given frame.
func SVG(w io.Writer, f *frame.Frame, scale int) error {
	if scale < 1 {
		scale = 1
	}
	size := int(f.Size())
	side := size * scale

	if _, err := fmt.Fprintf(w, svgOpen, side, side); err != nil {
		return err
	}
	if size > 0 {
		if _, err := fmt.Fprintf(w, svgRect, 0, 0, side, side, uint32(palette.White)); err != nil {
			return err
		}
		for i, c := range f.Colors() {
			if c == palette.White {
				continue
			}
			x, y := i%size, i/size
			if _, err := fmt.Fprintf(w, svgRect, x*scale, y*scale, scale, scale, uint32(c)); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, svgClose)
	return err
}
