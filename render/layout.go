package render

import (
	"fmt"

	"github.com/bioplotkit/locusplot/locus"
)

// PanelHeights divides a total page height among panels in proportion to the
// given weights, top-down in track order.
func PanelHeights(weights []float64, total float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights provided")
	}

	sum := 0.0
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight %d is %f; weights must be positive", i, w)
		}
		sum += w
	}

	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = total * w / sum
	}

	return out, nil
}

// panel is the drawable rectangle assigned to one track, in canvas
// coordinates (CartesianIV: origin top-left, y increasing downward).
type panel struct {
	X float64
	Y float64
	W float64
	H float64

	Locus locus.Locus
}

// xAt maps a genomic position onto the panel's horizontal extent.
func (p panel) xAt(pos int) float64 {
	frac := float64(pos-p.Locus.Start()) / float64(p.Locus.Len())

	return p.X + frac*p.W
}

// xClamped is xAt bounded to the panel edges, for features that extend past
// the visible window.
func (p panel) xClamped(pos int) float64 {
	x := p.xAt(pos)
	if x < p.X {
		return p.X
	}
	if x > p.X+p.W {
		return p.X + p.W
	}

	return x
}
