// Package cytoband loads Giemsa band intervals for ideogram tracks and
// carries embedded chromosome-length lookups so an outline-only ideogram can
// render without a band file.
package cytoband

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bioplotkit/locusplot"
)

//go:embed lookups/*
var embeddedLookups embed.FS

// Band is one cytoband row: chrom, start, end, band name, Giemsa stain
// (gneg, gpos25..gpos100, acen, gvar, stalk).
type Band struct {
	Chrom string
	Start int
	End   int
	Name  string
	Stain string
}

// Load reads a UCSC-style cytoBand file from a URL or local path.
func Load(pathOrURL string) ([]Band, error) {
	return LoadTimeout(pathOrURL, locusplot.DefaultFetchTimeout)
}

// LoadTimeout is Load with an explicit fetch timeout.
func LoadTimeout(pathOrURL string, timeout time.Duration) ([]Band, error) {
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

// Read parses tab-delimited cytoband rows.
func Read(r io.Reader) ([]Band, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	out := make([]Band, 0)

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		if x := len(row); x < 5 {
			return nil, &locusplot.FormatError{Line: i, Err: fmt.Errorf("had %d fields, expected 5", x)}
		}

		start, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		end, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		out = append(out, Band{Chrom: row[0], Start: start, End: end, Name: row[3], Stain: row[4]})
	}

	return out, nil
}

// ForChrom retains only bands on the named chromosome, accepting names with
// or without the "chr" prefix on either side.
func ForChrom(bands []Band, chrom string) []Band {
	out := make([]Band, 0)

	for _, band := range bands {
		if normalizeChrom(band.Chrom) == normalizeChrom(chrom) {
			out = append(out, band)
		}
	}

	return out
}

func normalizeChrom(chrom string) string {
	return strings.TrimPrefix(chrom, "chr")
}

// ChromLength returns the length of a chromosome in the named assembly
// (grch37 or grch38) from the embedded lookups.
func ChromLength(assembly, chrom string) (int, error) {
	fileBytes, err := embeddedLookups.ReadFile("lookups/" + strings.ToLower(assembly))
	if err != nil {
		return 0, fmt.Errorf("assembly %q is not recognized: %w", assembly, err)
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = '\t'

	entries, err := cr.ReadAll()
	if err != nil {
		return 0, err
	}

	header := make(map[string]int)
	want := normalizeChrom(chrom)

	for i, v := range entries {
		if i == 0 {
			for key, name := range v {
				header[name] = key
			}
			continue
		}

		if v[header["name"]] != want {
			continue
		}

		return strconv.Atoi(v[header["end"]])
	}

	return 0, fmt.Errorf("chromosome %q not found in assembly %q", chrom, assembly)
}
