package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// fetchTempo returns the track tempo in BPM, or nil when Spotify reports none.
func (c *Client) fetchTempo(ctx context.Context, id spotify.ID) (*float64, error) {
	features, err := c.api.GetAudioFeatures(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching audio features: %w", err)
	}
	if len(features) == 0 || features[0] == nil {
		return nil, nil
	}
	return tempoBPM(features[0]), nil
}

// tempoBPM converts the reported tempo; zero means the analysis found no beat.
func tempoBPM(f *spotify.AudioFeatures) *float64 {
	if f.Tempo <= 0 {
		return nil
	}
	bpm := float64(f.Tempo)
	return &bpm
}
