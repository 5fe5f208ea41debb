package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sequential YlOrRd palettes by class count
var sequentialPalettes = map[int][]string{
	9: {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"},
	8: {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026"},
	7: {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c"},
	6: {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a"},
	5: {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c"},
	4: {"#ffffcc", "#ffeda0", "#feb24c", "#fd8d3c"},
	3: {"#ffffcc", "#feb24c", "#fd8d3c"},
	2: {"#ffffcc", "#fd8d3c"},
	1: {"#fd8d3c"},
}

// ColorScale returns n hex colors from the built-in sequential palette.
// Counts above 9 stretch the widest palette.
func ColorScale(n int) []string {
	if n <= 0 {
		return nil
	}
	if palette, ok := sequentialPalettes[n]; ok {
		out := make([]string, n)
		copy(out, palette)
		return out
	}
	widest := sequentialPalettes[9]
	out := make([]string, n)
	for i := 0; i < n; i++ {
		idx := int(math.Round(float64(i) * float64(len(widest)-1) / float64(n-1)))
		out[i] = widest[idx]
	}
	return out
}

// GradientPalette expands a 5-stop dark-to-light scheme to numClasses
// colors. Class counts at or below the stop count take an evenly spaced
// subset; larger counts interpolate linearly in RGB.
func GradientPalette(scheme map[string]string, numClasses int) []string {
	base := schemeDarkToLight(scheme)
	if numClasses <= 0 {
		return nil
	}
	if numClasses <= len(base) {
		step := float64(len(base)) / float64(numClasses)
		out := make([]string, numClasses)
		for i := 0; i < numClasses; i++ {
			out[i] = base[int(float64(i)*step)]
		}
		return out
	}

	rgb := make([][3]int, len(base))
	for i, c := range base {
		rgb[i] = hexToRGB(c)
	}

	out := make([]string, numClasses)
	for i := 0; i < numClasses; i++ {
		pos := float64(i) * float64(len(rgb)-1) / float64(numClasses-1)
		lower := int(pos)
		upper := lower + 1
		if upper >= len(rgb) {
			upper = len(rgb) - 1
		}
		if lower == upper {
			out[i] = rgbToHex(rgb[lower])
			continue
		}
		t := pos - float64(lower)
		var mixed [3]int
		for j := 0; j < 3; j++ {
			mixed[j] = rgb[lower][j] + int(t*float64(rgb[upper][j]-rgb[lower][j]))
		}
		out[i] = rgbToHex(mixed)
	}
	return out
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return [3]int{128, 128, 128}
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(hex[2*i:2*i+2], 16, 32)
		if err != nil {
			return [3]int{128, 128, 128}
		}
		rgb[i] = int(v)
	}
	return rgb
}

func rgbToHex(rgb [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
