// Package index turns the video corpus into vector-store documents and runs
// the full collection rebuild.
package index

import (
	"fmt"

	"pibo/internal/corpus"
	"pibo/internal/text"
	"pibo/internal/vector"
)

// Short tags used in document ids, one per representation.
var typeTags = map[string]string{
	vector.TypeTranscript:  "t",
	vector.TypeDescription: "d",
	vector.TypeTitleOnly:   "ti",
}

type Assembler struct {
	ChunkSize    int
	ChunkOverlap int
}

// Documents picks the representation to index for one video, first match
// wins: transcript chunks, else description, else title only. Ids combine
// video id, type tag and chunk index, which keeps them unique across a build.
func (a Assembler) Documents(v corpus.Video) []vector.Document {
	if v.HasTranscript() {
		chunks := text.ChunkTranscript(v.Transcript, a.ChunkSize, a.ChunkOverlap)
		docs := make([]vector.Document, 0, len(chunks))
		for i, ch := range chunks {
			docs = append(docs, vector.Document{
				ID:   docID(v.ID, vector.TypeTranscript, i),
				Text: ch.Text,
				Metadata: vector.Metadata{
					VideoID:    v.ID,
					Title:      v.Title,
					URL:        v.WatchURL(),
					Type:       vector.TypeTranscript,
					StartTime:  ch.Start,
					ChunkIndex: i,
				},
			})
		}
		return docs
	}

	if v.Description != "" {
		return []vector.Document{{
			ID:   docID(v.ID, vector.TypeDescription, 0),
			Text: fmt.Sprintf("제목: %s\n\n설명: %s", v.Title, v.Description),
			Metadata: vector.Metadata{
				VideoID: v.ID,
				Title:   v.Title,
				URL:     v.WatchURL(),
				Type:    vector.TypeDescription,
			},
		}}
	}

	return []vector.Document{{
		ID:   docID(v.ID, vector.TypeTitleOnly, 0),
		Text: "제목: " + v.Title,
		Metadata: vector.Metadata{
			VideoID: v.ID,
			Title:   v.Title,
			URL:     v.WatchURL(),
			Type:    vector.TypeTitleOnly,
		},
	}}
}

func docID(videoID, docType string, chunkIndex int) string {
	return fmt.Sprintf("%s_%s_%d", videoID, typeTags[docType], chunkIndex)
}
