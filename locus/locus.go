// Package locus represents the visible window of a stacked genome figure: a
// chromosome plus a 1-based inclusive coordinate interval.
package locus

import (
	"fmt"
	"strconv"
	"strings"
)

type Locus struct {
	chrom string
	start int
	end   int
}

func MakeLocus(chrom string, start, end int) Locus {
	return Locus{chrom, start, end}
}

// Parse accepts UCSC-style strings such as "chr7:106692877-107374371".
// Commas within coordinates are permitted and ignored.
func Parse(input string) (Locus, error) {
	chpos := strings.Split(input, ":")
	if x := len(chpos); x != 2 {
		return Locus{}, fmt.Errorf("expected 2 parts when splitting %q by : but found %d", input, x)
	}

	startstop := strings.Split(strings.ReplaceAll(chpos[1], ",", ""), "-")
	if x := len(startstop); x != 2 {
		return Locus{}, fmt.Errorf("expected 2 parts when splitting %q by - but found %d", chpos[1], x)
	}

	start, err := strconv.Atoi(startstop[0])
	if err != nil {
		return Locus{}, err
	}

	end, err := strconv.Atoi(startstop[1])
	if err != nil {
		return Locus{}, err
	}

	if start > end {
		return Locus{}, fmt.Errorf("locus %q starts after it ends", input)
	}

	return MakeLocus(chpos[0], start, end), nil
}

func (l Locus) Chrom() string {
	return l.chrom
}

func (l Locus) Start() int {
	return l.start
}

func (l Locus) End() int {
	return l.end
}

func (l Locus) Len() int {
	return l.end - l.start + 1
}

func (l Locus) String() string {
	return fmt.Sprintf("%s:%d-%d", l.chrom, l.start, l.end)
}

// Overlaps reports whether the given interval shares at least one base with
// the locus. Chromosome names must match exactly.
func (l Locus) Overlaps(chrom string, start, end int) bool {
	if chrom != l.chrom {
		return false
	}

	return start <= l.end && end >= l.start
}

// Contains reports whether a single position falls within the locus.
func (l Locus) Contains(chrom string, pos int) bool {
	return l.Overlaps(chrom, pos, pos)
}
