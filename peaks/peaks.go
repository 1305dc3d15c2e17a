// Package peaks loads tabular peak calls (BED-like rows) and subsets them
// against a genomic locus.
package peaks

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bioplotkit/locusplot"
	"github.com/bioplotkit/locusplot/locus"
)

// Peak is one called interval. Columns beyond the first three are preserved
// verbatim in Extra.
type Peak struct {
	Chrom string
	Start int
	End   int
	Extra []string
}

// Load reads a peak file from a URL or local path.
func Load(pathOrURL string) ([]Peak, error) {
	return LoadTimeout(pathOrURL, locusplot.DefaultFetchTimeout)
}

// LoadTimeout is Load with an explicit fetch timeout.
func LoadTimeout(pathOrURL string, timeout time.Duration) ([]Peak, error) {
	fileBytes, err := locusplot.OpenFileOrURL(pathOrURL, timeout)
	if err != nil {
		return nil, err
	}

	out, err := Read(bytes.NewReader(fileBytes))
	if err != nil {
		if fe, ok := err.(*locusplot.FormatError); ok {
			fe.File = pathOrURL
		}
		return nil, err
	}

	return out, nil
}

// Read parses peak rows, sniffing whether the file is tab- or
// comma-delimited. Browser "track" lines and # comments are skipped.
func Read(r io.Reader) ([]Peak, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	delim := locusplot.DetermineDelimiter(bytes.NewReader(raw))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make([]Peak, 0)

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		if len(row) > 0 && (strings.HasPrefix(row[0], "track") || strings.HasPrefix(row[0], "browser")) {
			continue
		}

		if x := len(row); x < 3 {
			return nil, &locusplot.FormatError{Line: i, Err: fmt.Errorf("had %d fields, expected at least 3", x)}
		}

		start, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		end, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		peak := Peak{Chrom: row[0], Start: start, End: end}
		if len(row) > 3 {
			peak.Extra = append([]string{}, row[3:]...)
		}

		out = append(out, peak)
	}

	return out, nil
}

// Overlapping retains only peaks that share at least one base with l. The
// result is always a subset of the input, in input order.
func Overlapping(list []Peak, l locus.Locus) []Peak {
	out := make([]Peak, 0, len(list))

	for _, peak := range list {
		if l.Overlaps(peak.Chrom, peak.Start, peak.End) {
			out = append(out, peak)
		}
	}

	return out
}
