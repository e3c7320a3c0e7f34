package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/justestif/go-dj-remix/internal/track"
)

// testDB connects to the database named by DJ_REMIX_TEST_DATABASE_URL,
// skipping the test when it is unset.
func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("DJ_REMIX_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("DJ_REMIX_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := New(ctx, url)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(database.Close)

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return database
}

func TestTrackRepository_SaveAndGet(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := database.Tracks()

	bpm := 124.0
	tr := &track.Track{
		ID:          uuid.NewString(),
		Title:       "Test Song",
		Artist:      "Test Artist",
		SourceURL:   "https://example.com/song",
		AudioPath:   "static/audio/song.mp3",
		CoverArtURL: "https://example.com/cover.jpg",
		BPM:         &bpm,
	}

	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != tr.Title {
		t.Errorf("Title = %q, want %q", got.Title, tr.Title)
	}
	if got.BPM == nil || *got.BPM != bpm {
		t.Errorf("BPM = %v, want %v", got.BPM, bpm)
	}
	if got.DurationSeconds != nil {
		t.Errorf("DurationSeconds = %v, want nil", *got.DurationSeconds)
	}

	// Upsert replaces fields
	tr.Title = "Renamed"
	tr.BPM = nil
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = repo.Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", got.Title, "Renamed")
	}
	if got.BPM != nil {
		t.Errorf("BPM = %v, want nil", *got.BPM)
	}
}

func TestTrackRepository_GetMissing(t *testing.T) {
	database := testDB(t)

	_, err := database.Tracks().Get(context.Background(), uuid.NewString())
	if !errors.Is(err, track.ErrNotFound) {
		t.Errorf("Get() error = %v, want track.ErrNotFound", err)
	}
}

func TestTrackRepository_List(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := database.Tracks()

	tr := &track.Track{
		ID:          uuid.NewString(),
		Title:       "Listed",
		Artist:      "Artist",
		SourceURL:   "https://example.com/listed",
		AudioPath:   "static/audio/listed.mp3",
		CoverArtURL: "https://example.com/listed.jpg",
	}
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tracks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	found := false
	for _, got := range tracks {
		if got.ID == tr.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("List() did not include track %s", tr.ID)
	}
}
