package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-dj-remix/internal/track"
)

// TrackRepository handles track database operations.
type TrackRepository struct {
	pool *pgxpool.Pool
}

// Save creates or updates a track.
func (r *TrackRepository) Save(ctx context.Context, t *track.Track) error {
	query := `
		INSERT INTO tracks (id, title, artist, source_url, audio_path, cover_art_url, bpm, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			source_url = EXCLUDED.source_url,
			audio_path = EXCLUDED.audio_path,
			cover_art_url = EXCLUDED.cover_art_url,
			bpm = EXCLUDED.bpm,
			duration_seconds = EXCLUDED.duration_seconds
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Artist,
		t.SourceURL,
		t.AudioPath,
		t.CoverArtURL,
		t.BPM,
		t.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("upserting track: %w", err)
	}
	return nil
}

// Get retrieves a track by ID.
func (r *TrackRepository) Get(ctx context.Context, id string) (*track.Track, error) {
	query := `
		SELECT id, title, artist, source_url, audio_path, cover_art_url, bpm, duration_seconds
		FROM tracks
		WHERE id = $1
	`
	var t track.Track
	err := scanTrack(r.pool.QueryRow(ctx, query, id), &t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, track.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying track: %w", err)
	}
	return &t, nil
}

// List retrieves all tracks, oldest first.
func (r *TrackRepository) List(ctx context.Context) ([]track.Track, error) {
	query := `
		SELECT id, title, artist, source_url, audio_path, cover_art_url, bpm, duration_seconds
		FROM tracks
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tracks: %w", err)
	}
	defer rows.Close()

	tracks := []track.Track{}
	for rows.Next() {
		var t track.Track
		if err := scanTrack(rows, &t); err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// scanTrack reads one row in the column order used by Get and List.
func scanTrack(row pgx.Row, t *track.Track) error {
	return row.Scan(
		&t.ID,
		&t.Title,
		&t.Artist,
		&t.SourceURL,
		&t.AudioPath,
		&t.CoverArtURL,
		&t.BPM,
		&t.DurationSeconds,
	)
}

var _ track.Store = (*TrackRepository)(nil)
