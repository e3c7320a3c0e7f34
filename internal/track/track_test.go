package track

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func validTrack() Track {
	return Track{
		ID:          "track-1",
		Title:       "Windowlicker",
		Artist:      "Aphex Twin",
		SourceURL:   "https://open.spotify.com/track/abc123",
		AudioPath:   "static/audio/track-1.mp3",
		CoverArtURL: "https://i.scdn.co/image/cover",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Track)
		wantFields []string
	}{
		{
			name:   "required fields only",
			modify: func(*Track) {},
		},
		{
			name: "with optional fields",
			modify: func(tr *Track) {
				bpm, duration := 128.0, 372.5
				tr.BPM = &bpm
				tr.DurationSeconds = &duration
			},
		},
		{
			name:       "missing id",
			modify:     func(tr *Track) { tr.ID = "" },
			wantFields: []string{"id"},
		},
		{
			name:       "missing title",
			modify:     func(tr *Track) { tr.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name:       "missing artist",
			modify:     func(tr *Track) { tr.Artist = "" },
			wantFields: []string{"artist"},
		},
		{
			name:       "missing source url",
			modify:     func(tr *Track) { tr.SourceURL = "" },
			wantFields: []string{"source_url"},
		},
		{
			name:       "missing audio path",
			modify:     func(tr *Track) { tr.AudioPath = "" },
			wantFields: []string{"audio_path"},
		},
		{
			name:       "missing cover art url",
			modify:     func(tr *Track) { tr.CoverArtURL = "" },
			wantFields: []string{"cover_art_url"},
		},
		{
			name:       "empty record",
			modify:     func(tr *Track) { *tr = Track{} },
			wantFields: []string{"id", "title", "artist", "source_url", "audio_path", "cover_art_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrack()
			tt.modify(&tr)

			err := tr.Validate()
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if !reflect.DeepEqual(verr.Fields, tt.wantFields) {
				t.Errorf("Fields = %v, want %v", verr.Fields, tt.wantFields)
			}
		})
	}
}

func TestDecodeOptionalFieldsAbsent(t *testing.T) {
	body := `{
		"id": "t1",
		"title": "Song",
		"artist": "Band",
		"source_url": "https://example.com/song",
		"audio_path": "static/audio/t1.wav",
		"cover_art_url": "https://example.com/cover.jpg"
	}`

	var tr Track
	if err := json.Unmarshal([]byte(body), &tr); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if tr.BPM != nil {
		t.Errorf("BPM = %v, want nil", *tr.BPM)
	}
	if tr.DurationSeconds != nil {
		t.Errorf("DurationSeconds = %v, want nil", *tr.DurationSeconds)
	}
}

func TestEncodeOmitsUnknownOptionalFields(t *testing.T) {
	tr := validTrack()
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := fields["bpm"]; ok {
		t.Error("bpm present in output, want absent")
	}
	if _, ok := fields["duration_seconds"]; ok {
		t.Error("duration_seconds present in output, want absent")
	}
	if fields["source_url"] != tr.SourceURL {
		t.Errorf("source_url = %v, want %q", fields["source_url"], tr.SourceURL)
	}
}
