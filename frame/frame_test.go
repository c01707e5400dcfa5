package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/pixelframe/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	pixels  [][3]uint8
	fills   []uint8
	batches []int
}

func (r *recorder) PixelChanged(x, y, index uint8) {
	r.pixels = append(r.pixels, [3]uint8{x, y, index})
}

func (r *recorder) FrameFilled(index uint8) {
	r.fills = append(r.fills, index)
}

func (r *recorder) PixelsBatched(count int) {
	r.batches = append(r.batches, count)
}

func TestNew(t *testing.T) {
	tables := []struct {
		size  uint8
		bytes int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 3},
		{4, 4},
		{8, 16},
		{255, 16257},
	}

	for _, table := range tables {
		f := New(table.size)

		assert.Equal(t, table.size, f.Size())
		assert.Equal(t, int(table.size)*int(table.size), f.Pixels())
		assert.Len(t, f.Bytes(), table.bytes)

		for _, index := range f.Indices() {
			require.Equal(t, uint8(0), index)
		}
	}
}

func TestSetPixel(t *testing.T) {
	f := New(8)

	require.NoError(t, f.SetPixel(5, 2, 2))
	require.NoError(t, f.SetPixel(2, 5, 3))

	index, err := f.PixelAt(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), index)

	index, err = f.PixelAt(2, 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), index)

	// Every other pixel is untouched
	var others int
	for y := uint8(0); y < 8; y++ {
		for x := uint8(0); x < 8; x++ {
			if (x == 5 && y == 2) || (x == 2 && y == 5) {
				continue
			}
			index, err := f.PixelAt(x, y)
			require.NoError(t, err)
			require.Equal(t, uint8(0), index)
			others++
		}
	}
	assert.Equal(t, 62, others)

	assert.Len(t, f.Bytes(), 16)
}

func TestSetPixelErrors(t *testing.T) {
	f := New(4)

	assert.Equal(t, ErrOutOfBounds, f.SetPixel(4, 0, 0))
	assert.Equal(t, ErrOutOfBounds, f.SetPixel(0, 4, 0))
	assert.Equal(t, palette.ErrIndexOutOfRange, f.SetPixel(0, 0, 4))

	_, err := f.PixelAt(4, 0)
	assert.Equal(t, ErrOutOfBounds, err)
}

func TestEmptyFrame(t *testing.T) {
	f := New(0)

	assert.Equal(t, 0, f.Pixels())
	assert.Empty(t, f.Bytes())
	assert.Empty(t, f.Indices())
	assert.Equal(t, ErrOutOfBounds, f.SetPixel(0, 0, 0))
}

func TestSetPixelColor(t *testing.T) {
	f := New(2)

	require.NoError(t, f.SetPixelColor(1, 0, palette.Purple))

	index, err := f.PixelAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), index)

	c, err := f.ColorAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, palette.Purple, c)

	assert.Equal(t, palette.ErrColorNotInPalette, f.SetPixelColor(0, 0, 0x123456))
}

func TestBytes(t *testing.T) {
	f := New(2)

	require.NoError(t, f.SetPixel(1, 0, 3))

	// Flat position 1 occupies bits 2-3 of the first byte
	b := f.Bytes()
	require.Equal(t, []byte{0x0c}, b)

	// Mutating the copy must not affect the frame
	b[0] = 0xff
	assert.Equal(t, []byte{0x0c}, f.Bytes())
}

func TestIndices(t *testing.T) {
	f := New(3)

	require.NoError(t, f.SetPixel(2, 1, 1))

	want := make([]uint8, 9)
	want[1*3+2] = 1
	assert.Equal(t, want, f.Indices())
}

func TestColors(t *testing.T) {
	f := New(2)

	require.NoError(t, f.SetPixel(0, 1, 3))

	assert.Equal(t, []palette.Color{
		palette.White, palette.White,
		palette.Blue, palette.White,
	}, f.Colors())
}

func TestFill(t *testing.T) {
	f := New(5)

	require.NoError(t, f.SetPixel(3, 3, 1))
	require.NoError(t, f.Fill(2))

	for _, index := range f.Indices() {
		require.Equal(t, uint8(2), index)
	}

	assert.Equal(t, palette.ErrIndexOutOfRange, f.Fill(4))
}

func TestSetPixels(t *testing.T) {
	f := New(4)

	require.NoError(t, f.SetPixels(
		[]uint8{0, 1, 2},
		[]uint8{0, 1, 2},
		[]uint8{1, 2, 3},
	))

	for i := uint8(0); i < 3; i++ {
		index, err := f.PixelAt(i, i)
		require.NoError(t, err)
		assert.Equal(t, i+1, index)
	}
}

func TestSetPixelsLengthMismatch(t *testing.T) {
	f := New(4)

	err := f.SetPixels(
		[]uint8{0, 1, 2},
		[]uint8{0, 1},
		[]uint8{1, 2, 3},
	)
	assert.Equal(t, ErrLengthMismatch, err)

	for _, index := range f.Indices() {
		require.Equal(t, uint8(0), index)
	}
}

func TestSetPixelsAllOrNothing(t *testing.T) {
	f := New(4)

	// The bad element aborts the batch before any write happens
	err := f.SetPixels(
		[]uint8{0, 1, 2},
		[]uint8{0, 1, 2},
		[]uint8{1, 4, 3},
	)
	assert.Equal(t, palette.ErrIndexOutOfRange, err)

	err = f.SetPixels(
		[]uint8{0, 1, 4},
		[]uint8{0, 1, 2},
		[]uint8{1, 2, 3},
	)
	assert.Equal(t, ErrOutOfBounds, err)

	for _, index := range f.Indices() {
		require.Equal(t, uint8(0), index)
	}
}

func TestObserver(t *testing.T) {
	f := New(4)
	r := new(recorder)
	f.SetObserver(r)

	require.NoError(t, f.SetPixel(1, 2, 3))
	require.NoError(t, f.Fill(1))
	require.NoError(t, f.SetPixels([]uint8{0, 1}, []uint8{0, 0}, []uint8{2, 2}))

	assert.Equal(t, [][3]uint8{{1, 2, 3}}, r.pixels)
	assert.Equal(t, []uint8{1}, r.fills)
	assert.Equal(t, []int{2}, r.batches)

	// Failed operations must not notify
	require.Error(t, f.SetPixel(4, 0, 0))
	assert.Len(t, r.pixels, 1)

	// A detached observer hears nothing further
	f.SetObserver(nil)
	require.NoError(t, f.SetPixel(0, 0, 1))
	assert.Len(t, r.pixels, 1)
}

func TestMarshalBinary(t *testing.T) {
	f := New(3)

	require.NoError(t, f.SetPixel(1, 1, 2))

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 4)
	assert.Equal(t, uint8(3), b[0])

	g := new(Frame)
	require.NoError(t, g.UnmarshalBinary(b))

	assert.Equal(t, f.Size(), g.Size())
	assert.Equal(t, f.Indices(), g.Indices())
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	tables := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte{2}},
		{"long", []byte{1, 0x00, 0x00}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			f := new(Frame)
			assert.Equal(t, ErrBadLength, f.UnmarshalBinary(table.data))
		})
	}
}

func TestImage(t *testing.T) {
	f := New(2)

	require.NoError(t, f.SetPixel(1, 1, 3))

	assert.Equal(t, image.Rect(0, 0, 2, 2), f.Bounds())
	assert.Equal(t, palette.Blue, f.At(1, 1))
	assert.Equal(t, palette.White, f.At(0, 0))
	assert.Equal(t, palette.White, f.At(-1, 5))

	model, ok := f.ColorModel().(color.Palette)
	require.True(t, ok)
	assert.Equal(t, 3, model.Index(palette.Blue))
}
