package chromem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pibo/internal/vector"
)

// manifest records what a build put into the collection: the embedding model
// (checked on every query) and a small document sample for inspection. It
// lives next to the database files.
type manifest struct {
	Collection     string    `json:"collection"`
	EmbeddingModel string    `json:"embedding_model"`
	BuiltAt        time.Time `json:"built_at"`
	Documents      int       `json:"documents"`
	SampleIDs      []string  `json:"sample_ids"`
}

func manifestPath(dir string) string {
	return filepath.Join(dir, "manifest.json")
}

func newManifest(collection, model string) *manifest {
	return &manifest{
		Collection:     collection,
		EmbeddingModel: model,
		BuiltAt:        time.Now().UTC(),
	}
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}

func removeManifest(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove manifest: %w", err)
	}
	return nil
}

func (m *manifest) record(docs []vector.Document) {
	m.Documents += len(docs)
	for _, d := range docs {
		if len(m.SampleIDs) >= sampleIDLimit {
			break
		}
		m.SampleIDs = append(m.SampleIDs, d.ID)
	}
}

func (m *manifest) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}
