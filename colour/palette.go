package colour

var palette = []Colour{
	RGB(0x2b, 0x7f, 0xa8), //#2b7fa8
	RGB(0xa4, 0x63, 0x3a), //#a4633a
	RGB(0x51, 0x85, 0x4d), //#51854d
	RGB(0x72, 0x6c, 0xae), //#726cae
	RGB(0x85, 0x76, 0x25), //#857625
	RGB(0x97, 0x5f, 0x91), //#975f91
	RGB(0xc0, 0x39, 0x2b),
	RGB(0x16, 0xa0, 0x85),
}

// Palette returns the series colour for index i. Indices wrap.
func Palette(i int) Colour {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

var (
	Black      = RGB(0, 0, 0)
	White      = RGB(255, 255, 255)
	Background = RGB(0xfa, 0xfa, 0xfa)
	Grid       = RGBA(0, 0, 0, 50.0/255)
	GridMajor  = RGBA(0, 0, 0, 100.0/255)
)
