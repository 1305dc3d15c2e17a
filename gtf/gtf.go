// Package gtf loads gene annotation from GTF files and flattens the rows of
// interest into exon-level records.
package gtf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bioplotkit/locusplot"
)

// Record is one flattened annotation row. Start and End are 1-based
// inclusive, as in the file.
type Record struct {
	Seqname string
	Source  string
	Feature string
	Start   int
	End     int
	Score   string
	Strand  string
	Frame   string

	GeneID         string
	GeneName       string
	GeneType       string
	TranscriptID   string
	TranscriptType string
}

// Filter restricts which rows are kept. An empty set accepts every value for
// that field, so the zero Filter keeps everything.
type Filter struct {
	Features        map[string]bool
	GeneTypes       map[string]bool
	TranscriptTypes map[string]bool
}

// Types is a convenience for building the accepted-value sets.
func Types(values ...string) map[string]bool {
	out := make(map[string]bool)
	for _, v := range values {
		out[v] = true
	}
	return out
}

func (f Filter) Keep(rec Record) bool {
	if len(f.Features) > 0 && !f.Features[rec.Feature] {
		return false
	}
	if len(f.GeneTypes) > 0 && !f.GeneTypes[rec.GeneType] {
		return false
	}
	if len(f.TranscriptTypes) > 0 && !f.TranscriptTypes[rec.TranscriptType] {
		return false
	}

	return true
}

// Load fetches a GTF from a URL or local path and returns the filtered
// records. Remote failures surface as *locusplot.FetchError, malformed
// content as *locusplot.FormatError.
func Load(pathOrURL string, f Filter) ([]Record, error) {
	return LoadTimeout(pathOrURL, f, locusplot.DefaultFetchTimeout)
}

// LoadTimeout is Load with an explicit fetch timeout.
func LoadTimeout(pathOrURL string, f Filter, timeout time.Duration) ([]Record, error) {
	fileBytes, err := locusplot.OpenFileOrURL(pathOrURL, timeout)
	if err != nil {
		return nil, err
	}

	records, err := ReadFiltered(bytes.NewReader(fileBytes), f)
	if err != nil {
		if fe, ok := err.(*locusplot.FormatError); ok {
			fe.File = pathOrURL
		}
		return nil, err
	}

	return records, nil
}

// Read parses every non-comment row.
func Read(r io.Reader) ([]Record, error) {
	return ReadFiltered(r, Filter{})
}

// ReadFiltered parses the GTF and keeps only rows accepted by f.
func ReadFiltered(r io.Reader, f Filter) ([]Record, error) {
	br := bufio.NewReader(r)

	out := make([]Record, 0)

	var line string
	var err error
	for i := 0; ; i++ {
		line, err = br.ReadString('\n')
		if err == io.EOF && line == "" {
			break
		} else if err != nil && err != io.EOF {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		lineCandidate := strings.TrimSuffix(line, "\n")
		if lineCandidate == "" || strings.HasPrefix(lineCandidate, "#") {
			if err == io.EOF {
				break
			}
			continue
		}

		rec, perr := parseLine(lineCandidate)
		if perr != nil {
			return nil, &locusplot.FormatError{Line: i, Err: perr}
		}

		if f.Keep(rec) {
			out = append(out, rec)
		}

		if err == io.EOF {
			break
		}
	}

	return out, nil
}

func parseLine(line string) (Record, error) {
	row := strings.Split(line, "\t")
	if x := len(row); x < 9 {
		return Record{}, fmt.Errorf("had %d fields, expected 9", x)
	}

	start, err := strconv.Atoi(row[3])
	if err != nil {
		return Record{}, err
	}

	end, err := strconv.Atoi(row[4])
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Seqname: row[0],
		Source:  row[1],
		Feature: row[2],
		Start:   start,
		End:     end,
		Score:   row[5],
		Strand:  row[6],
		Frame:   row[7],
	}

	attributes, err := ParseAttributes(row[8])
	if err != nil {
		return Record{}, err
	}

	for _, attr := range attributes {
		switch attr.Key {
		case "gene_id":
			rec.GeneID = attr.Value
		case "gene_name":
			rec.GeneName = attr.Value
		case "gene_type", "gene_biotype":
			rec.GeneType = attr.Value
		case "transcript_id":
			rec.TranscriptID = attr.Value
		case "transcript_type", "transcript_biotype":
			rec.TranscriptType = attr.Value
		}
	}

	return rec, nil
}

type KeyValue struct {
	Key   string
	Value string
}

// ParseAttributes splits the semicolon-delimited GTF attribute column into
// key/value pairs, stripping the quotes around values.
func ParseAttributes(attr string) ([]KeyValue, error) {
	out := make([]KeyValue, 0)

	attributes := strings.Split(attr, ";")
	for i, attribute := range attributes {
		parts := strings.SplitN(strings.TrimSpace(attribute), " ", 2)
		if x := len(parts); x < 2 {
			// Line ends in a semicolon
			break
		} else if x != 2 {
			return nil, fmt.Errorf("expected 2 parts; attribute %d had %d (%+v)", i, x, parts)
		}

		out = append(out, KeyValue{Key: parts[0], Value: strings.Trim(parts[1], "\"")})
	}

	return out, nil
}
