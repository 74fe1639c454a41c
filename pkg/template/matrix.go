package template

import (
	"strconv"
	"strings"
)

// PixelMatrixID renders a grid of colored pixel cells, used for pixel-art
// style covers (letter banners, dates, small sprites).
const PixelMatrixID = "pixel-matrix"

// Pixel-matrix defaults, overridable per preset through style extras.
const (
	defaultMatrixBg      = "#1a1a2e"
	defaultMatrixPadding = "40px"
	defaultPixelSize     = 20
	defaultPixelGap      = 2
	defaultPixelRounded  = 2
)

// PixelMatrix lays out Props.Matrix as rows of fixed-size cells. A cell is
// transparent when empty, an image when it holds glyph data, and a solid
// rounded square otherwise.
func PixelMatrix(p *Props) *Node {
	s := p.Style

	bg := s.Background.Solid
	if bg == "" {
		bg = defaultMatrixBg
	}
	padding := s.Padding
	if padding == "" {
		padding = defaultMatrixPadding
	}
	size := strconv.Itoa(extraInt(s.Extra, "pixelSize", defaultPixelSize)) + "px"
	gap := strconv.Itoa(extraInt(s.Extra, "pixelGap", defaultPixelGap)) + "px"
	rounded := strconv.Itoa(extraInt(s.Extra, "pixelRounded", defaultPixelRounded)) + "px"

	grid := Div("flex", "flex-col").Set("gap", gap)
	for _, row := range p.Matrix {
		line := Div("flex").Set("gap", gap)
		for _, cell := range row {
			line.Add(matrixCell(cell, size, rounded))
		}
		grid.Add(line)
	}

	return Div("w-full", "h-full", "flex", "items-center", "justify-center").
		Set("backgroundColor", bg).
		Set("fontFamily", s.FontFamily).
		Set("padding", padding).
		Add(Div("flex", "items-center", "justify-center").Add(grid))
}

func matrixCell(cell, size, rounded string) *Node {
	n := Div("flex").Set("width", size).Set("height", size)
	switch {
	case cell == "":
		n.Set("backgroundColor", "transparent")
	case strings.HasPrefix(cell, "data:"):
		n.Set("backgroundImage", "url("+cell+")").
			Set("backgroundSize", "100% 100%").
			Set("backgroundRepeat", "no-repeat").
			Set("borderRadius", rounded)
	default:
		n.Set("backgroundColor", cell).Set("borderRadius", rounded)
	}
	return n
}

func extraInt(extra map[string]string, key string, fallback int) int {
	if v, ok := extra[key]; ok {
		if n, err := strconv.Atoi(strings.TrimSuffix(v, "px")); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// digitGlyphs are 5-row pixel patterns for digits and the dot, 3 columns
// each. '#' marks a filled cell.
var digitGlyphs = map[rune][]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	'.': {"   ", "   ", "   ", "   ", " # "},
}

// letterGlyphs are 7-row pixel patterns for the letters banner templates
// use, 5 columns each.
var letterGlyphs = map[rune][]string{
	'I': {"#####", "  #  ", "  #  ", "  #  ", "  #  ", "  #  ", "#####"},
	'M': {"#   #", "## ##", "# # #", "#   #", "#   #", "#   #", "#   #"},
	'G': {"#####", "#    ", "#    ", "#  ##", "#   #", "#   #", "#####"},
	'X': {"#   #", "#   #", " # # ", "  #  ", " # # ", "#   #", "#   #"},
	'O': {"#####", "#   #", "#   #", "#   #", "#   #", "#   #", "#####"},
	'Z': {"#####", "    #", "   # ", "  #  ", " #   ", "#    ", "#####"},
	'T': {"#####", "  #  ", "  #  ", "  #  ", "  #  ", "  #  ", "  #  "},
	'E': {"#####", "#    ", "#### ", "#    ", "#    ", "#    ", "#####"},
	'P': {"#### ", "#   #", "#### ", "#    ", "#    ", "#    ", "#    "},
	'A': {" ### ", "#   #", "#####", "#   #", "#   #", "#   #", "#   #"},
	'D': {"#### ", "#   #", "#   #", "#   #", "#   #", "#   #", "#### "},
}

// DigitsMatrix renders s (digits and dots, e.g. "12.25") as a 5-row pixel
// matrix with fill as the cell value and one blank column between glyphs.
// Unknown characters are skipped.
func DigitsMatrix(s, fill string) [][]string {
	return composeMatrix(s, fill, digitGlyphs, 5)
}

// LettersMatrix renders s (uppercased) as a 7-row pixel matrix. Letters
// without a glyph pattern are skipped.
func LettersMatrix(s, fill string) [][]string {
	return composeMatrix(strings.ToUpper(s), fill, letterGlyphs, 7)
}

func composeMatrix(s, fill string, glyphs map[rune][]string, rows int) [][]string {
	matrix := make([][]string, rows)

	for _, r := range s {
		glyph, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			if len(matrix[i]) > 0 {
				matrix[i] = append(matrix[i], "") // column between glyphs
			}
			for _, c := range glyph[i] {
				if c == '#' {
					matrix[i] = append(matrix[i], fill)
				} else {
					matrix[i] = append(matrix[i], "")
				}
			}
		}
	}
	return matrix
}
