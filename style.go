package plot

// Style defines the visual appearance of a graph.
type Style struct {
	// Surface colors
	BackgroundColor uint32 // Whole surface, including the axis margins
	PlotBgColor     uint32 // Plot area behind the lines (0 = BackgroundColor)
	BorderColor     uint32 // Plot area outline (0 = none)

	// Rulers
	GridColor      uint32 // Major gridlines
	MinorGridColor uint32 // Minor gridlines (0 = not drawn)
	AxisColor      uint32 // Tick bar base line
	TickColor      uint32
	LabelColor     uint32

	// Overlays
	MarkerHoverColor uint32
	CrosshairColor   uint32 // 0 = no crosshair
	LegendBgColor    uint32

	// Palette cycled by AddLine for lines created without a color.
	Palette []uint32

	// Sizing
	LabelScale      float32 // Bitmap font scale for labels
	MajorTickLength float32
	MinorTickLength float32
	MarginLeft      float32 // Space reserved for the vertical tick bar
	MarginBottom    float32 // Space reserved for the horizontal tick bar
	MarginTop       float32
	MarginRight     float32
	MinLabelGap     float32 // Minimum pixels between major tick labels

	ShowGrid   bool
	ShowLegend bool
}

// DefaultStyle returns a light style suitable for screenshots and reports.
func DefaultStyle() Style {
	return Style{
		BackgroundColor: RGBA(245, 245, 245, 255),
		PlotBgColor:     ColorWhite,
		BorderColor:     RGBA(160, 160, 160, 255),

		GridColor:      RGBA(215, 215, 215, 255),
		MinorGridColor: RGBA(238, 238, 238, 255),
		AxisColor:      RGBA(90, 90, 90, 255),
		TickColor:      RGBA(90, 90, 90, 255),
		LabelColor:     RGBA(40, 40, 40, 255),

		MarkerHoverColor: RGBA(255, 140, 0, 255),
		CrosshairColor:   RGBA(120, 120, 120, 160),
		LegendBgColor:    RGBA(255, 255, 255, 220),

		Palette: []uint32{
			RGBA(31, 119, 180, 255),
			RGBA(214, 39, 40, 255),
			RGBA(44, 160, 44, 255),
			RGBA(255, 127, 14, 255),
			RGBA(148, 103, 189, 255),
			RGBA(23, 190, 207, 255),
		},

		LabelScale:      1,
		MajorTickLength: 6,
		MinorTickLength: 3,
		MarginLeft:      64,
		MarginBottom:    24,
		MarginTop:       8,
		MarginRight:     12,
		MinLabelGap:     64,

		ShowGrid:   true,
		ShowLegend: true,
	}
}

// DarkStyle returns a dark theme.
func DarkStyle() Style {
	s := DefaultStyle()
	s.BackgroundColor = RGBA(20, 20, 20, 255)
	s.PlotBgColor = RGBA(30, 30, 32, 255)
	s.BorderColor = RGBA(80, 80, 80, 255)
	s.GridColor = RGBA(55, 55, 60, 255)
	s.MinorGridColor = RGBA(38, 38, 42, 255)
	s.AxisColor = RGBA(150, 150, 150, 255)
	s.TickColor = RGBA(150, 150, 150, 255)
	s.LabelColor = RGBA(220, 220, 220, 255)
	s.MarkerHoverColor = ColorYellow
	s.CrosshairColor = RGBA(200, 200, 200, 120)
	s.LegendBgColor = RGBA(20, 20, 20, 220)
	s.Palette = []uint32{
		RGBA(100, 181, 246, 255),
		RGBA(239, 83, 80, 255),
		RGBA(129, 199, 132, 255),
		RGBA(255, 183, 77, 255),
		RGBA(186, 104, 200, 255),
		RGBA(77, 208, 225, 255),
	}
	return s
}

// TerminalStyle returns a style tuned for low-resolution surfaces such as
// the braille backend, where every pixel of margin is expensive.
func TerminalStyle() Style {
	s := DarkStyle()
	s.PlotBgColor = 0
	s.BorderColor = 0
	s.MinorGridColor = 0
	s.MajorTickLength = 2
	s.MinorTickLength = 0
	s.LabelScale = 0.25 // One glyph per 2x4 braille cell
	s.MarginLeft = 40
	s.MarginBottom = 16
	s.MarginTop = 4
	s.MarginRight = 4
	s.MinLabelGap = 48
	s.ShowLegend = false
	return s
}

// LineColor returns the palette color for the i-th line.
func (s *Style) LineColor(i int) uint32 {
	if len(s.Palette) == 0 {
		return s.LabelColor
	}
	return s.Palette[i%len(s.Palette)]
}

// plotBg returns the plot area background color.
func (s *Style) plotBg() uint32 {
	if s.PlotBgColor == 0 {
		return s.BackgroundColor
	}
	return s.PlotBgColor
}
