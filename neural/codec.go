package neural

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrShortCode is returned when an encoded genome set ends early.
var ErrShortCode = errors.New("genome code truncated")

// EncodeGenomes writes a compact display encoding of the genome set: per
// genome the source and sink indices as unsigned varints followed by the
// weight as one two's-complement byte.
func EncodeGenomes(g *Genomes) []byte {
	buf := make([]byte, 0, GenomeCount*3)
	for i := range g {
		buf = binary.AppendUvarint(buf, uint64(g[i].Source))
		buf = binary.AppendUvarint(buf, uint64(g[i].Sink))
		buf = append(buf, byte(g[i].Weight))
	}
	return buf
}

// SampleCode returns the hex form of EncodeGenomes, as shown in the HUD.
func SampleCode(g *Genomes) string {
	return hex.EncodeToString(EncodeGenomes(g))
}

// DecodeGenomes parses the output of EncodeGenomes. Trailing bytes are ignored.
func DecodeGenomes(data []byte) (Genomes, error) {
	var g Genomes
	for i := range g {
		src, n := binary.Uvarint(data)
		if n <= 0 {
			return Genomes{}, fmt.Errorf("genome %d source: %w", i, ErrShortCode)
		}
		data = data[n:]

		sink, n := binary.Uvarint(data)
		if n <= 0 {
			return Genomes{}, fmt.Errorf("genome %d sink: %w", i, ErrShortCode)
		}
		data = data[n:]

		if len(data) == 0 {
			return Genomes{}, fmt.Errorf("genome %d weight: %w", i, ErrShortCode)
		}
		if src >= NumSources {
			return Genomes{}, fmt.Errorf("genome %d: unknown source index %d", i, src)
		}
		if sink >= NumSinks {
			return Genomes{}, fmt.Errorf("genome %d: unknown sink index %d", i, sink)
		}
		g[i] = Genome{Source: Source(src), Sink: Sink(sink), Weight: int8(data[0])}
		data = data[1:]
	}
	return g, nil
}

// ParseSampleCode decodes a hex sample code back into a genome set.
func ParseSampleCode(code string) (Genomes, error) {
	data, err := hex.DecodeString(code)
	if err != nil {
		return Genomes{}, fmt.Errorf("decoding hex: %w", err)
	}
	return DecodeGenomes(data)
}
