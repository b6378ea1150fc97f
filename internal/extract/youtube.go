// Package extract pulls video metadata for a channel from the YouTube Data
// API and shapes it into corpus entries. Transcripts are not available
// through this API, so extracted videos carry empty transcripts and are
// indexed through their descriptions until transcripts are supplied.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"pibo/internal/corpus"
)

const pageSize = 50

type Client struct {
	svc *youtube.Service
}

func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append(opts, option.WithAPIKey(apiKey))
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ChannelVideos lists every upload of the channel, newest first, following
// playlist pagination to the end.
func (c *Client) ChannelVideos(ctx context.Context, channelID string) ([]corpus.Video, error) {
	ch, err := c.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	if len(ch.Items) == 0 {
		return nil, fmt.Errorf("channel %s not found", channelID)
	}
	uploads := ch.Items[0].ContentDetails.RelatedPlaylists.Uploads

	var videos []corpus.Video
	pageToken := ""
	for {
		resp, err := c.svc.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(uploads).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("fetch uploads page: %w", err)
		}

		for _, item := range resp.Items {
			videos = append(videos, videoFromItem(item))
		}
		slog.InfoContext(ctx, "fetched uploads page", "videos_so_far", len(videos))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, nil
}

func videoFromItem(item *youtube.PlaylistItem) corpus.Video {
	id := item.Snippet.ResourceId.VideoId
	return corpus.Video{
		ID:          id,
		Title:       item.Snippet.Title,
		URL:         "https://www.youtube.com/watch?v=" + id,
		Description: item.Snippet.Description,
		Transcript:  []corpus.Segment{},
	}
}
