package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/bioplotkit/locusplot"
)

// ManifestRow describes one track in the tab-delimited manifest. Header
// columns map by name; absent columns keep their zero values.
type ManifestRow struct {
	Type     string  `csv:"type"`
	Path     string  `csv:"path"`
	Layout   string  `csv:"layout"`
	Label    string  `csv:"label"`
	Color    string  `csv:"color"`
	Edge     string  `csv:"edge"`
	Weight   float64 `csv:"weight"`
	Gene     string  `csv:"gene"`
	Collapse bool    `csv:"collapse"`
	BinSize  int     `csv:"binsize"`
	Max      float64 `csv:"max"`
}

func ReadManifest(path string) ([]*ManifestRow, error) {
	fileBytes, err := locusplot.OpenFileOrURL(path, locusplot.DefaultFetchTimeout)
	if err != nil {
		return nil, err
	}

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	rows := []*ManifestRow{}
	if err := gocsv.UnmarshalBytes(fileBytes, &rows); err != nil {
		return nil, &locusplot.FormatError{File: path, Line: -1, Err: err}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no tracks defined in manifest %s", path)
	}

	return rows, nil
}
