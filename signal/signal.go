// Package signal references binary coverage files (bigWig) by path. The
// files are not parsed at load time; the renderer reads a binned summary of
// the visible locus lazily through a bigWig reader.
package signal

import (
	"fmt"
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"github.com/pbenner/gonetics"

	"github.com/bioplotkit/locusplot/locus"
)

// DefaultBins is the number of summary bins drawn across the locus when a
// reference does not set its own bin size.
const DefaultBins = 700

// Ref points at a coverage file on disk. Display parameters live on the
// track; Ref carries only what is needed to read values.
type Ref struct {
	Path string

	// BinSize in bases. Zero means: divide the locus into DefaultBins bins.
	BinSize int

	// ClampPercentile, when nonzero, caps values at that percentile of the
	// binned data so a single spike does not flatten the rest of the polygon.
	ClampPercentile float64
}

// Resolve verifies that the referenced file exists. The renderer calls this
// during validation so a missing file fails the render call before any
// drawing occurs.
func (r Ref) Resolve() error {
	if r.Path == "" {
		return fmt.Errorf("signal reference has no path")
	}

	if _, err := os.Stat(r.Path); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Binned reads a mean-summarized slice of coverage over l. It returns the
// values and the bin size in bases that was used.
func (r Ref) Binned(l locus.Locus) ([]float64, int, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	defer f.Close()

	bwr, err := gonetics.NewBigWigReader(f)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}

	binSize := r.BinSize
	if binSize == 0 {
		binSize = l.Len() / DefaultBins
		if binSize < 1 {
			binSize = 1
		}
	}

	values, binSize, err := bwr.QuerySlice(l.Chrom(), l.Start(), l.End(), gonetics.BinMean, binSize, 0, 0.0)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}

	values = CleanValues(values)

	if r.ClampPercentile > 0 {
		values = Clamp(values, r.ClampPercentile)
	}

	return values, binSize, nil
}

// CleanValues replaces NaN and negative-infinite bins (unmapped regions) with
// zero so downstream scaling stays finite.
func CleanValues(values []float64) []float64 {
	out := make([]float64, len(values))

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 0
			continue
		}
		out[i] = v
	}

	return out
}

// Clamp caps values at the given percentile (0 < pct <= 100) of the input.
func Clamp(values []float64, pct float64) []float64 {
	if len(values) == 0 {
		return values
	}

	ceiling, err := stats.Percentile(stats.Float64Data(values), pct)
	if err != nil {
		return values
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if v > ceiling {
			out[i] = ceiling
			continue
		}
		out[i] = v
	}

	return out
}
