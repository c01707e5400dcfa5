/*
Package frame implements a square pixel grid stored as a densely packed
byte buffer holding four 2-bit palette indices per byte.

A frame of size n covers n by n pixels flattened in row-major order, so
pixel (x, y) is at position y*n+x and occupies the two bits at offset
(position%4)*2 within byte position/4. The buffer is exactly
ceil(n*n/4) bytes and is the canonical wire form of a frame; a freshly
constructed frame is all zeroes, which is every pixel set to the first
palette color.
*/
package frame

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/pixelframe/palette"
)

var (
	// ErrOutOfBounds is returned when either coordinate is not less
	// than the frame size.
	ErrOutOfBounds = errors.New("frame: coordinates out of bounds")

	// ErrLengthMismatch is returned when the slices passed to a batch
	// write differ in length.
	ErrLengthMismatch = errors.New("frame: array length mismatch")

	// ErrBadLength is returned when unmarshalling data whose length
	// does not match the encoded frame size.
	ErrBadLength = errors.New("frame: incorrect data length")
)

// Observer receives change notifications from a frame. All methods are
// called synchronously from the mutating goroutine.
type Observer interface {
	PixelChanged(x, y, index uint8)
	FrameFilled(index uint8)
	PixelsBatched(count int)
}

// Frame is a size by size pixel grid. The zero value is an empty frame;
// use New or UnmarshalBinary to create a usable one.
type Frame struct {
	size     uint8
	pix      []byte
	observer Observer
}

// New returns a frame of the given size with every pixel set to index
// zero. A size of zero yields an empty frame that rejects every
// coordinate.
func New(size uint8) *Frame {
	n := int(size) * int(size)
	return &Frame{
		size: size,
		pix:  make([]byte, (n+3)/4),
	}
}

// Size returns the edge length of the frame in pixels.
func (f *Frame) Size() uint8 {
	return f.size
}

// Pixels returns the total number of pixels in the frame.
func (f *Frame) Pixels() int {
	return int(f.size) * int(f.size)
}

// SetObserver attaches o to the frame; a nil o detaches any current
// observer. Notifications are best effort and not part of the data
// contract.
func (f *Frame) SetObserver(o Observer) {
	f.observer = o
}

func (f *Frame) offset(x, y uint8) (int, int, error) {
	if x >= f.size || y >= f.size {
		return 0, 0, ErrOutOfBounds
	}
	p := int(y)*int(f.size) + int(x)
	return p >> 2, p & 0x03, nil
}

func (f *Frame) setPixel(x, y, index uint8) error {
	i, position, err := f.offset(x, y)
	if err != nil {
		return err
	}
	b, err := palette.SetIndexAt(f.pix[i], position, index)
	if err != nil {
		return err
	}
	f.pix[i] = b
	return nil
}

// SetPixel writes a palette index at (x, y).
func (f *Frame) SetPixel(x, y, index uint8) error {
	if err := f.setPixel(x, y, index); err != nil {
		return err
	}
	if f.observer != nil {
		f.observer.PixelChanged(x, y, index)
	}
	return nil
}

// PixelAt reads the palette index at (x, y).
func (f *Frame) PixelAt(x, y uint8) (uint8, error) {
	i, position, err := f.offset(x, y)
	if err != nil {
		return 0, err
	}
	return palette.IndexAt(f.pix[i], position)
}

// SetPixelColor resolves c to its palette index and writes it at (x, y).
// The color must match one of the canonical palette colors exactly.
func (f *Frame) SetPixelColor(x, y uint8, c palette.Color) error {
	index, err := palette.Index(c)
	if err != nil {
		return err
	}
	return f.SetPixel(x, y, index)
}

// ColorAt reads the color at (x, y).
func (f *Frame) ColorAt(x, y uint8) (palette.Color, error) {
	index, err := f.PixelAt(x, y)
	if err != nil {
		return 0, err
	}
	return palette.At(index)
}

// Bytes returns a copy of the packed pixel buffer. This is the wire
// format; four 2-bit indices per byte, first pixel in the least
// significant bits, pixels in row-major order.
func (f *Frame) Bytes() []byte {
	return append(f.pix[:0:0], f.pix...)
}

// Indices returns every pixel as a palette index, in row-major order.
func (f *Frame) Indices() []uint8 {
	indices := make([]uint8, 0, len(f.pix)*palette.IndicesPerByte)
	for _, b := range f.pix {
		u := palette.UnpackIndices(b)
		indices = append(indices, u[:]...)
	}
	return indices[:f.Pixels()]
}

// Colors returns every pixel as its canonical color, in row-major order.
func (f *Frame) Colors() []palette.Color {
	indices := f.Indices()
	cs := make([]palette.Color, len(indices))
	for i, index := range indices {
		// Stored indices are always valid so the lookup cannot fail
		cs[i], _ = palette.At(index)
	}
	return cs
}

// Fill overwrites every pixel with the given palette index. It builds
// one template byte and copies it over the buffer rather than touching
// pixels individually.
func (f *Frame) Fill(index uint8) error {
	var template byte
	for position := 0; position < palette.IndicesPerByte; position++ {
		b, err := palette.SetIndexAt(template, position, index)
		if err != nil {
			return err
		}
		template = b
	}
	for i := range f.pix {
		f.pix[i] = template
	}
	if f.observer != nil {
		f.observer.FrameFilled(index)
	}
	return nil
}

// SetPixels writes a palette index at each (xs[i], ys[i]). Every
// coordinate and index is validated before anything is written, so a
// bad element leaves the frame untouched.
func (f *Frame) SetPixels(xs, ys, indices []uint8) error {
	if len(xs) != len(ys) || len(xs) != len(indices) {
		return ErrLengthMismatch
	}
	for i := range xs {
		if xs[i] >= f.size || ys[i] >= f.size {
			return ErrOutOfBounds
		}
		if indices[i] >= palette.Size {
			return palette.ErrIndexOutOfRange
		}
	}
	for i := range xs {
		_ = f.setPixel(xs[i], ys[i], indices[i])
	}
	if f.observer != nil {
		f.observer.PixelsBatched(len(xs))
	}
	return nil
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return palette.Colors()
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(f.size), int(f.size))
}

// At implements the image.Image interface. Out of bounds coordinates
// return the first palette color, matching a freshly constructed frame.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= int(f.size) || y >= int(f.size) {
		return palette.White
	}
	c, _ := f.ColorAt(uint8(x), uint8(y))
	return c
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// encoding is one size byte followed by the packed pixel buffer.
func (f *Frame) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 1+len(f.pix))
	b = append(b, f.size)
	return append(b, f.pix...), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return ErrBadLength
	}
	size := data[0]
	n := int(size) * int(size)
	if len(data)-1 != (n+3)/4 {
		return ErrBadLength
	}
	f.size = size
	f.pix = append(data[:0:0], data[1:]...)
	return nil
}
