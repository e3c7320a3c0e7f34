package spotify

// Metadata is what Spotify knows about a track.
// BPM and DurationSeconds are nil when Spotify did not report them.
type Metadata struct {
	ID              string
	Title           string
	Artist          string // Comma-separated artist names
	CoverArtURL     string // Largest album image, empty if none
	BPM             *float64
	DurationSeconds *float64
}
