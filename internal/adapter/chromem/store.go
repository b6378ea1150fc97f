// Package chromem adapts the embedded chromem-go vector database to the
// vector.Store interface. The database is persistent and opened fresh per
// process; single-writer access is assumed.
package chromem

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"pibo/internal/vector"
)

const sampleIDLimit = 5

type Store struct {
	db        *chromem.DB
	name      string
	embed     chromem.EmbeddingFunc
	model     string
	manifest  *manifest
	manifPath string
}

// NewStore opens (or creates) the persistent database under dir. model names
// the embedding model behind embed; it is recorded at build time and checked
// at query time so an index built with one model is never searched with
// another.
func NewStore(dir, collection string, embed chromem.EmbeddingFunc, model string) (*Store, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db at %s: %w", dir, err)
	}

	s := &Store{
		db:        db,
		name:      collection,
		embed:     embed,
		model:     model,
		manifPath: manifestPath(dir),
	}
	s.manifest, err = loadManifest(s.manifPath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureAbsent drops the collection and its manifest. A collection that never
// existed is not an error.
func (s *Store) EnsureAbsent(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection %q: %w", s.name, err)
	}
	s.manifest = nil
	return removeManifest(s.manifPath)
}

func (s *Store) Create(ctx context.Context) error {
	_, err := s.db.CreateCollection(s.name, map[string]string{"embedding_model": s.model}, s.embed)
	if err != nil {
		return fmt.Errorf("create collection %q: %w", s.name, err)
	}

	s.manifest = newManifest(s.name, s.model)
	return s.manifest.save(s.manifPath)
}

func (s *Store) Add(ctx context.Context, docs []vector.Document) error {
	col, err := s.collection()
	if err != nil {
		return err
	}

	cdocs := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		cdocs = append(cdocs, chromem.Document{
			ID:       d.ID,
			Content:  d.Text,
			Metadata: metadataToMap(d.Metadata),
		})
	}

	// Embeddings are computed here, one document at a time. Ingestion is a
	// strictly sequential batch job.
	if err := col.AddDocuments(ctx, cdocs, 1); err != nil {
		return fmt.Errorf("add %d documents to %q: %w", len(docs), s.name, err)
	}

	if s.manifest != nil {
		s.manifest.record(docs)
		return s.manifest.save(s.manifPath)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, query string, topK int) ([]vector.Result, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}
	if err := s.checkModel(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	// chromem rejects nResults above the collection size.
	n := topK
	if c := col.Count(); c < n {
		n = c
	}
	if n == 0 {
		return nil, nil
	}

	results, err := col.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", s.name, err)
	}

	out := make([]vector.Result, 0, len(results))
	for _, r := range results {
		out = append(out, vector.Result{
			Text:       r.Content,
			Metadata:   metadataFromMap(r.Metadata),
			Similarity: r.Similarity,
		})
	}
	return out, nil
}

// Peek returns the documents sampled at build time, for inspection.
func (s *Store) Peek(ctx context.Context, limit int) ([]vector.Result, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}
	if s.manifest == nil {
		return nil, nil
	}

	ids := s.manifest.SampleIDs
	if limit < len(ids) {
		ids = ids[:limit]
	}

	out := make([]vector.Result, 0, len(ids))
	for _, id := range ids {
		doc, err := col.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get document %q: %w", id, err)
		}
		out = append(out, vector.Result{
			Text:     doc.Content,
			Metadata: metadataFromMap(doc.Metadata),
		})
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	col, err := s.collection()
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

func (s *Store) collection() (*chromem.Collection, error) {
	col := s.db.GetCollection(s.name, s.embed)
	if col == nil {
		return nil, fmt.Errorf("collection %q not found: build the index first", s.name)
	}
	return col, nil
}

// checkModel rejects a query when the index was built with a different
// embedding model than the one configured now.
func (s *Store) checkModel() error {
	if s.manifest == nil || s.manifest.EmbeddingModel == "" {
		return nil
	}
	if s.manifest.EmbeddingModel != s.model {
		return fmt.Errorf("collection %q was built with embedding model %q but %q is configured: rebuild the index",
			s.name, s.manifest.EmbeddingModel, s.model)
	}
	return nil
}

func metadataToMap(m vector.Metadata) map[string]string {
	return map[string]string{
		"video_id":    m.VideoID,
		"title":       m.Title,
		"url":         m.URL,
		"type":        m.Type,
		"start_time":  strconv.FormatFloat(m.StartTime, 'f', -1, 64),
		"chunk_index": strconv.Itoa(m.ChunkIndex),
	}
}

func metadataFromMap(m map[string]string) vector.Metadata {
	start, _ := strconv.ParseFloat(m["start_time"], 64)
	idx, _ := strconv.Atoi(m["chunk_index"])
	return vector.Metadata{
		VideoID:    m["video_id"],
		Title:      m["title"],
		URL:        m["url"],
		Type:       m["type"],
		StartTime:  start,
		ChunkIndex: idx,
	}
}
