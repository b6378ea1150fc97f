// Package corpus holds the extracted video corpus: one JSON file, read and
// written wholesale. Downstream stages treat loaded videos as read-only.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrCorpusNotFound = errors.New("corpus file not found")

// Segment is a single timestamped transcript line as returned by the
// transcription service.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
}

// Video is one content item of the corpus. Transcript and Description are
// optional; either may be empty depending on how the video was extracted.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Transcript  []Segment `json:"transcript"`
}

// WatchURL returns the stored URL, falling back to the canonical watch link
// when extraction did not record one.
func (v Video) WatchURL() string {
	if v.URL != "" {
		return v.URL
	}
	return "https://www.youtube.com/watch?v=" + v.ID
}

// HasTranscript reports whether any transcript segments were extracted.
func (v Video) HasTranscript() bool {
	return len(v.Transcript) > 0
}

// Load reads the whole corpus file. A missing file is reported as
// ErrCorpusNotFound so callers can abort gracefully instead of crashing.
func Load(path string) ([]Video, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var videos []Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", path, err)
	}
	return videos, nil
}

// Save writes the whole corpus file, creating the parent directory if needed.
// HTML escaping is disabled so Korean titles and & in URLs stay readable.
func Save(path string, videos []Video) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(videos); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	return nil
}
