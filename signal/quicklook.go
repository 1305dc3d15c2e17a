package signal

import (
	"bytes"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/bioplotkit/locusplot/locus"
)

// QuickLook renders a simple PNG line chart of binned coverage over l,
// useful for eyeballing a signal file before composing a full figure.
func QuickLook(ref Ref, l locus.Locus, yMin, yMax float64, w io.Writer) error {
	values, binSize, err := ref.Binned(l)
	if err != nil {
		return err
	}

	return QuickLookValues(values, binSize, l, yMin, yMax, w)
}

// QuickLookValues charts already-binned values.
func QuickLookValues(values []float64, binSize int, l locus.Locus, yMin, yMax float64, w io.Writer) error {
	var chartRange *chart.ContinuousRange

	if yMin != yMax {
		chartRange = &chart.ContinuousRange{Min: yMin, Max: yMax}
	}

	xs := make([]float64, len(values))
	for i := range values {
		xs[i] = float64(l.Start() + i*binSize + binSize/2)
	}

	graph := chart.Chart{
		Title:  l.String(),
		Width:  1024,
		Height: 256,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: chartRange,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: values,
			},
		},
	}

	// Render to a byte buffer before touching the writer, so a chart error
	// leaves the output untouched.
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	_, err := buffer.WriteTo(w)

	return err
}
