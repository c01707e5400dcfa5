package palette

// Color is a 24-bit RGB value packed as 0xRRGGBB.
type Color uint32

// Pack combines three 8-bit channels into a single 24-bit color.
func Pack(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Red returns the red channel.
func (c Color) Red() uint8 {
	return uint8(c >> 16)
}

// Green returns the green channel.
func (c Color) Green() uint8 {
	return uint8(c >> 8)
}

// Blue returns the blue channel.
func (c Color) Blue() uint8 {
	return uint8(c)
}

// Unpack splits the color back into its three channels.
func (c Color) Unpack() (r, g, b uint8) {
	return c.Red(), c.Green(), c.Blue()
}

// RGBA implements the color.Color interface. Channels are scaled from
// 8-bit to 16-bit and the color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.Red())
	r |= r << 8
	g = uint32(c.Green())
	g |= g << 8
	b = uint32(c.Blue())
	b |= b << 8
	return r, g, b, 0xffff
}
