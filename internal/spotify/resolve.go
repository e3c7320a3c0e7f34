package spotify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// ErrInvalidSource is returned when a source URL is not a Spotify track link.
var ErrInvalidSource = errors.New("not a Spotify track link")

const uriPrefix = "spotify:track:"

// ParseTrackID extracts the track ID from a Spotify track link. Accepted forms:
//
//	https://open.spotify.com/track/<id>
//	https://open.spotify.com/intl-de/track/<id>?si=...
//	spotify:track:<id>
func ParseTrackID(source string) (spotify.ID, error) {
	source = strings.TrimSpace(source)

	if id, ok := strings.CutPrefix(source, uriPrefix); ok {
		return checkID(source, id)
	}

	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	if u.Host != "open.spotify.com" && u.Host != "play.spotify.com" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "track" {
			return checkID(source, segments[i+1])
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
}

// checkID accepts base62 IDs only.
func checkID(source, id string) (spotify.ID, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	for _, r := range id {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
		}
	}
	return spotify.ID(id), nil
}

// Resolve looks up the track behind a Spotify link.
// Tempo is best effort: if audio features are unavailable BPM is left nil.
func (c *Client) Resolve(ctx context.Context, source string) (*Metadata, error) {
	id, err := ParseTrackID(source)
	if err != nil {
		return nil, err
	}

	full, err := c.api.GetTrack(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching track %s: %w", id, err)
	}

	md := convertTrack(full)

	bpm, err := c.fetchTempo(ctx, id)
	if err != nil {
		log.Printf("spotify: no tempo for track %s: %v", id, err)
	}
	md.BPM = bpm

	return md, nil
}

// convertTrack converts a Spotify FullTrack to Metadata.
func convertTrack(full *spotify.FullTrack) *Metadata {
	// Join artist names
	artists := make([]string, len(full.Artists))
	for i, a := range full.Artists {
		artists[i] = a.Name
	}

	md := &Metadata{
		ID:     full.ID.String(),
		Title:  full.Name,
		Artist: strings.Join(artists, ", "),
	}

	// Spotify lists album images widest first
	if len(full.Album.Images) > 0 {
		md.CoverArtURL = full.Album.Images[0].URL
	}

	if d := full.TimeDuration(); d > 0 {
		seconds := d.Seconds()
		md.DurationSeconds = &seconds
	}

	return md
}
