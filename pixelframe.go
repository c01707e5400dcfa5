/*
Package pixelframe is a library for storing and rendering small pixel
art images drawn from a fixed four color palette, packed two bits per
pixel.
*/
package pixelframe

import (
	"io"
	"log"

	"github.com/bodgit/pixelframe/frame"
	"github.com/bodgit/pixelframe/palette"
	"github.com/bodgit/pixelframe/render"
)

// PixelFrame glues the frame store, the packed frame type and the
// renderers together. It attaches itself as the observer of every frame
// it mutates so all changes end up in the log.
type PixelFrame struct {
	db     *FrameDB
	logger *log.Logger
}

// New returns a PixelFrame on top of an already opened store.
func New(db *FrameDB, logger *log.Logger) *PixelFrame {
	return &PixelFrame{
		db:     db,
		logger: logger,
	}
}

// Open opens or creates the frame database at file and returns a
// PixelFrame using it.
func Open(file string, logger *log.Logger) (*PixelFrame, error) {
	db, err := NewFrameDB(file)
	if err != nil {
		return nil, err
	}
	return New(db, logger), nil
}

// Close closes the underlying store.
func (m *PixelFrame) Close() error {
	return m.db.Close()
}

// PixelChanged implements frame.Observer.
func (m *PixelFrame) PixelChanged(x, y, index uint8) {
	m.logger.Printf("pixel (%d,%d) set to index %d\n", x, y, index)
}

// FrameFilled implements frame.Observer.
func (m *PixelFrame) FrameFilled(index uint8) {
	m.logger.Printf("frame filled with index %d\n", index)
}

// PixelsBatched implements frame.Observer.
func (m *PixelFrame) PixelsBatched(count int) {
	m.logger.Printf("batch of %d pixels applied\n", count)
}

func (m *PixelFrame) load(name string) (*frame.Frame, error) {
	f, err := m.db.Load(name)
	if err != nil {
		return nil, err
	}
	f.SetObserver(m)
	return f, nil
}

// Create stores a fresh frame of the given size under name, replacing
// any existing frame with that name.
func (m *PixelFrame) Create(name string, size uint8) error {
	return m.db.Save(name, frame.New(size))
}

// Set writes a single palette index into the named frame.
func (m *PixelFrame) Set(name string, x, y, index uint8) error {
	f, err := m.load(name)
	if err != nil {
		return err
	}
	if err := f.SetPixel(x, y, index); err != nil {
		return err
	}
	return m.db.Save(name, f)
}

// SetColor writes a single pixel by color into the named frame. The
// color must be one of the four canonical palette colors.
func (m *PixelFrame) SetColor(name string, x, y uint8, c palette.Color) error {
	f, err := m.load(name)
	if err != nil {
		return err
	}
	if err := f.SetPixelColor(x, y, c); err != nil {
		return err
	}
	return m.db.Save(name, f)
}

// Paint applies a batch of pixel writes to the named frame. The batch
// is validated as a whole before anything is written.
func (m *PixelFrame) Paint(name string, xs, ys, indices []uint8) error {
	f, err := m.load(name)
	if err != nil {
		return err
	}
	if err := f.SetPixels(xs, ys, indices); err != nil {
		return err
	}
	return m.db.Save(name, f)
}

// Fill resets every pixel of the named frame to the given index.
func (m *PixelFrame) Fill(name string, index uint8) error {
	f, err := m.load(name)
	if err != nil {
		return err
	}
	if err := f.Fill(index); err != nil {
		return err
	}
	return m.db.Save(name, f)
}

// Show writes the named frame to w as a text grid.
func (m *PixelFrame) Show(w io.Writer, name string) error {
	f, err := m.db.Load(name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, render.ASCII(f))
	return err
}

// SVG writes the named frame to w as an SVG document.
func (m *PixelFrame) SVG(w io.Writer, name string, scale int) error {
	f, err := m.db.Load(name)
	if err != nil {
		return err
	}
	return render.SVG(w, f, scale)
}

// Raw returns the packed pixel buffer of the named frame.
func (m *PixelFrame) Raw(name string) ([]byte, error) {
	f, err := m.db.Load(name)
	if err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// List returns the names of all stored frames.
func (m *PixelFrame) List() ([]string, error) {
	return m.db.List()
}

// Delete removes the named frame from the store.
func (m *PixelFrame) Delete(name string) error {
	return m.db.Delete(name)
}
