package domain

// Palette is a fixed ordered list of colours for match card display.
type Palette []string

// DefaultPalette returns the default card colour palette.
func DefaultPalette() Palette {
	return Palette{
		"#F38BA8", // Red
		"#FAB387", // Orange
		"#F9E2AF", // Yellow
		"#A6E3A1", // Green
		"#94E2D5", // Teal
		"#89B4FA", // Blue
		"#B4BEFE", // Lavender
		"#CBA6F7", // Purple
	}
}

// Assign maps each id to a colour by cycling the palette in input
// order: ids[i] gets palette[i mod len(palette)]. The assignment is a
// pure function of the ordered id list, so re-running it with the same
// list yields identical colours. An empty palette assigns nothing.
func (p Palette) Assign(ids []string) map[string]string {
	colors := make(map[string]string, len(ids))
	if len(p) == 0 {
		return colors
	}
	for i, id := range ids {
		colors[id] = p[i%len(p)]
	}
	return colors
}
