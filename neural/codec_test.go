package neural

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestSampleCodeLayout(t *testing.T) {
	var g Genomes
	g[0] = Genome{Source: SourcePositionX, Sink: SinkMoveX, Weight: 10}
	g[1] = Genome{Source: SourceRandom, Sink: SinkInternal3, Weight: -3}

	code := SampleCode(&g)
	if len(code) != GenomeCount*3*2 {
		t.Fatalf("code length = %d, want %d", len(code), GenomeCount*3*2)
	}
	if !strings.HasPrefix(code, "05040a0403fd") {
		t.Errorf("code = %s, want prefix 05040a0403fd", code)
	}
	// Remaining genomes are I0 -> I0 with weight 0.
	if !strings.HasSuffix(code, strings.Repeat("000000", GenomeCount-2)) {
		t.Errorf("code = %s, want zero genomes after the first two", code)
	}
}

func TestParseSampleCode(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := RandomGenomes(rng)

	got, err := ParseSampleCode(SampleCode(&g))
	if err != nil {
		t.Fatalf("ParseSampleCode: %v", err)
	}
	if got != g {
		t.Errorf("parsed %v, want %v", got, g)
	}
}

func TestDecodeGenomesErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"empty", "", ErrShortCode},
		{"missing weight", "0504", ErrShortCode},
		{"one genome only", "05040a", ErrShortCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSampleCode(tt.code)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseSampleCode("zz"); err == nil {
		t.Error("expected hex error")
	}
	if _, err := ParseSampleCode("09040a" + strings.Repeat("000000", GenomeCount-1)); err == nil {
		t.Error("expected unknown source error")
	}
}
