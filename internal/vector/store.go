// Package vector defines the documents stored in the vector index and the
// store interface its consumers depend on. The concrete implementation lives
// in internal/adapter/chromem.
package vector

import "context"

// Document type tags. A video is indexed through exactly one of these
// representations, decided by the assembler.
const (
	TypeTranscript  = "transcript"
	TypeDescription = "description"
	TypeTitleOnly   = "title_only"
)

// Metadata travels with every indexed document and is returned verbatim on
// retrieval.
type Metadata struct {
	VideoID    string
	Title      string
	URL        string
	Type       string
	StartTime  float64
	ChunkIndex int
}

// Document is the unit stored in the index. ID must be unique within a build;
// the assembler guarantees this by combining video id, type tag and chunk
// index.
type Document struct {
	ID       string
	Text     string
	Metadata Metadata
}

// Result is one retrieval hit, ranked by similarity descending.
type Result struct {
	Text       string
	Metadata   Metadata
	Similarity float32
}

// Store is the vector collection as the indexing and retrieval pipelines see
// it. Implementations persist documents together with embeddings computed by
// an externally configured embedding function.
type Store interface {
	// EnsureAbsent removes the collection if it exists. Absence is success.
	EnsureAbsent(ctx context.Context) error

	// Create makes a fresh, empty collection. The previous collection must
	// have been removed first; a full rebuild never retains stale documents.
	Create(ctx context.Context) error

	// Add upserts one batch of documents. Callers batch; Add is sequential.
	Add(ctx context.Context, docs []Document) error

	// Query returns up to topK nearest documents for the query text. An empty
	// result is a defined outcome, not an error. Querying a collection that
	// was never built is an error.
	Query(ctx context.Context, query string, topK int) ([]Result, error)

	// Peek returns up to limit documents in storage order, for inspection.
	Peek(ctx context.Context, limit int) ([]Result, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int, error)
}
