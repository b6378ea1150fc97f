// Package text contains pure text-processing helpers used by the indexing
// pipeline.
package text

import (
	"strings"
	"unicode/utf8"

	"pibo/internal/corpus"
)

// Chunk is a bounded run of contiguous transcript segments. Start is the
// timestamp of the first segment folded into the chunk.
type Chunk struct {
	Text  string
	Start float64
}

// ChunkTranscript splits timestamped segments into chunks of at most chunkSize
// characters. Segments are never split: when appending the next segment would
// push the accumulator past the limit, the accumulator is flushed and a new
// chunk starts at that segment's timestamp. Lengths are counted in runes, not
// bytes, since the corpus is mostly Korean.
//
// overlap is accepted for call-site symmetry with other chunkers but carries
// no context between chunks; cuts are strict.
func ChunkTranscript(segments []corpus.Segment, chunkSize, overlap int) []Chunk {
	_ = overlap

	if len(segments) == 0 {
		return nil
	}

	var chunks []Chunk
	var b strings.Builder

	b.WriteString(segments[0].Text)
	length := utf8.RuneCountInString(segments[0].Text)
	start := segments[0].Start

	for _, seg := range segments[1:] {
		n := utf8.RuneCountInString(seg.Text)
		if length+1+n > chunkSize {
			chunks = append(chunks, Chunk{Text: strings.TrimSpace(b.String()), Start: start})
			b.Reset()
			b.WriteString(seg.Text)
			length = n
			start = seg.Start
			continue
		}
		b.WriteString(" ")
		b.WriteString(seg.Text)
		length += 1 + n
	}

	if b.Len() > 0 {
		chunks = append(chunks, Chunk{Text: strings.TrimSpace(b.String()), Start: start})
	}

	return chunks
}
