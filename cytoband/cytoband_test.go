package cytoband

import (
	"strings"
	"testing"
)

const sampleBands = `chr7	0	2800000	p22.3	gpos25
chr7	2800000	4500000	p22.2	gneg
chr7	58100000	59100000	p11.1	acen
chr7	59100000	61100000	q11.1	acen
chr8	0	2200000	p23.3	gneg
`

func TestRead(t *testing.T) {
	bands, err := Read(strings.NewReader(sampleBands))
	if err != nil {
		t.Fatal(err)
	}

	if len(bands) != 5 {
		t.Fatal("Expected 5 bands, got", len(bands))
	}

	if bands[0].Chrom != "chr7" || bands[0].End != 2800000 || bands[0].Stain != "gpos25" {
		t.Errorf("Mismatch: %+v", bands[0])
	}
}

func TestForChrom(t *testing.T) {
	bands, err := Read(strings.NewReader(sampleBands))
	if err != nil {
		t.Fatal(err)
	}

	chr7 := ForChrom(bands, "chr7")
	if len(chr7) != 4 {
		t.Error("Expected 4 chr7 bands, got", len(chr7))
	}

	// "7" and "chr7" should behave identically.
	if len(ForChrom(bands, "7")) != len(chr7) {
		t.Error("chr-prefix normalization mismatch")
	}
}

func TestReadMalformed(t *testing.T) {
	if _, err := Read(strings.NewReader("chr7\t0\t100\n")); err == nil {
		t.Error("Expected an error for a 3-field band row")
	}
}

func TestChromLength(t *testing.T) {
	for _, v := range []struct {
		Assembly string
		Chrom    string
		Expected int
	}{
		{"grch37", "7", 159138663},
		{"grch37", "chr7", 159138663},
		{"grch38", "chr7", 159345973},
		{"grch37", "X", 155270560},
	} {
		got, err := ChromLength(v.Assembly, v.Chrom)
		if err != nil {
			t.Error(err)
			continue
		}
		if got != v.Expected {
			t.Errorf("ChromLength(%s, %s): got %d, expected %d", v.Assembly, v.Chrom, got, v.Expected)
		}
	}

	if _, err := ChromLength("grch37", "chr99"); err == nil {
		t.Error("Expected an error for an unknown chromosome")
	}
	if _, err := ChromLength("hg1", "chr7"); err == nil {
		t.Error("Expected an error for an unknown assembly")
	}
}
