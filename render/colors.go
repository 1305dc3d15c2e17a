package render

import (
	"image/color"
	"strconv"
	"strings"
)

// parseColor interprets "#rrggbb" or "#rrggbbaa" hex strings, returning
// fallback for anything it cannot interpret.
func parseColor(hex string, fallback color.RGBA) color.RGBA {
	hex = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(hex)), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fallback
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return fallback
	}

	if len(hex) == 8 {
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// stainColor maps UCSC Giemsa stain labels onto ideogram fill colors.
func stainColor(stain string) color.RGBA {
	switch stain {
	case "gneg":
		return color.RGBA{255, 255, 255, 255}
	case "gpos25":
		return color.RGBA{191, 191, 191, 255}
	case "gpos50":
		return color.RGBA{127, 127, 127, 255}
	case "gpos75":
		return color.RGBA{84, 84, 84, 255}
	case "gpos100":
		return color.RGBA{25, 25, 25, 255}
	case "acen":
		return color.RGBA{140, 40, 40, 255}
	case "gvar":
		return color.RGBA{220, 220, 220, 255}
	case "stalk":
		return color.RGBA{100, 127, 164, 255}
	}

	return color.RGBA{255, 255, 255, 255}
}
