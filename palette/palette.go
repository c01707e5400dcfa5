/*
Package palette implements the fixed four color palette and the 2-bit
packed index codec used by the frame storage format.

The palette is ordered; a pixel is stored as the 2-bit position of its
color in the table. Each storage byte holds four such indices with the
first index in the two least significant bits.
*/
package palette

import (
	"errors"
	"image/color"
)

const (
	// Size is the number of colors in the palette.
	Size = 4

	// IndicesPerByte is how many packed indices fit in one storage byte.
	IndicesPerByte = 4

	indexBits = 2
	indexMask = 0x03
)

// The canonical palette, in index order.
const (
	White  Color = 0xffffff
	Black  Color = 0x000000
	Purple Color = 0x8c1c84
	Blue   Color = 0x45a2f8
)

var colors = [Size]Color{White, Black, Purple, Blue}

var (
	// ErrColorNotInPalette is returned when a color does not exactly
	// match any of the four canonical colors.
	ErrColorNotInPalette = errors.New("palette: color not in palette")

	// ErrIndexOutOfRange is returned when a palette index is not in [0,3].
	ErrIndexOutOfRange = errors.New("palette: index out of range")

	// ErrPositionOutOfRange is returned when a sub-byte position is not
	// in [0,3].
	ErrPositionOutOfRange = errors.New("palette: position out of range")

	// ErrTooManyIndices is returned when more than four indices are
	// packed into a single byte.
	ErrTooManyIndices = errors.New("palette: too many indices")
)

// Index returns the palette index of c. Matching is exact; there is no
// nearest color fallback.
func Index(c Color) (uint8, error) {
	for i, p := range colors {
		if p == c {
			return uint8(i), nil
		}
	}
	return 0, ErrColorNotInPalette
}

// At returns the canonical color at the given index.
func At(index uint8) (Color, error) {
	if index >= Size {
		return 0, ErrIndexOutOfRange
	}
	return colors[index], nil
}

// PackIndices packs up to four palette indices into one byte. The first
// element occupies the two least significant bits.
func PackIndices(indices []uint8) (byte, error) {
	if len(indices) > IndicesPerByte {
		return 0, ErrTooManyIndices
	}
	var b byte
	for i, index := range indices {
		if index >= Size {
			return 0, ErrIndexOutOfRange
		}
		b |= index << (uint(i) * indexBits)
	}
	return b, nil
}

// UnpackIndices extracts all four indices from a packed byte.
func UnpackIndices(b byte) [IndicesPerByte]uint8 {
	var indices [IndicesPerByte]uint8
	for i := range indices {
		indices[i] = b >> (uint(i) * indexBits) & indexMask
	}
	return indices
}

// IndexAt extracts the index at the given sub-byte position.
func IndexAt(b byte, position int) (uint8, error) {
	if position < 0 || position >= IndicesPerByte {
		return 0, ErrPositionOutOfRange
	}
	return b >> (uint(position) * indexBits) & indexMask, nil
}

// SetIndexAt returns b with the index at the given sub-byte position
// replaced. The remaining three positions are untouched.
func SetIndexAt(b byte, position int, index uint8) (byte, error) {
	if position < 0 || position >= IndicesPerByte {
		return 0, ErrPositionOutOfRange
	}
	if index >= Size {
		return 0, ErrIndexOutOfRange
	}
	shift := uint(position) * indexBits
	return b&^(indexMask<<shift) | index<<shift, nil
}

// IndicesOf maps each color to its palette index, stopping at the first
// color not in the palette.
func IndicesOf(cs []Color) ([]uint8, error) {
	indices := make([]uint8, len(cs))
	for i, c := range cs {
		index, err := Index(c)
		if err != nil {
			return nil, err
		}
		indices[i] = index
	}
	return indices, nil
}

// ColorsOf maps each palette index to its canonical color, stopping at
// the first out of range index.
func ColorsOf(indices []uint8) ([]Color, error) {
	cs := make([]Color, len(indices))
	for i, index := range indices {
		c, err := At(index)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}

// Colors returns the canonical palette as a color.Palette for use with
// the standard image packages.
func Colors() color.Palette {
	p := make(color.Palette, Size)
	for i, c := range colors {
		p[i] = c
	}
	return p
}
