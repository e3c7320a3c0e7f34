package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justestif/go-dj-remix/internal/spotify"
	"github.com/justestif/go-dj-remix/internal/track"
)

const (
	// RootMessage is returned by GET /.
	RootMessage = "AI DJ Remixing API is running"

	// HealthStatus is returned by GET /api/health.
	HealthStatus = "healthy"

	maxBodyBytes = 1 << 20
)

// TrackResolver looks up track metadata from a source URL.
type TrackResolver interface {
	Resolve(ctx context.Context, source string) (*spotify.Metadata, error)
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	tracks   track.Store
	resolver TrackResolver
	newID    func() string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(tracks track.Store, resolver TrackResolver) *Handlers {
	return &Handlers{
		tracks:   tracks,
		resolver: resolver,
		newID:    uuid.NewString,
	}
}

// Root reports that the service is up (GET /).
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": RootMessage})
}

// Health is the liveness probe (GET /api/health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": HealthStatus})
}

// NotFound answers unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

// ListTracks returns every stored track (GET /api/tracks).
func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.tracks.List(r.Context())
	if err != nil {
		log.Printf("listing tracks: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list tracks")
		return
	}
	if tracks == nil {
		tracks = []track.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GetTrack returns one track (GET /api/tracks/{id}).
func (h *Handlers) GetTrack(w http.ResponseWriter, r *http.Request) {
	t, err := h.tracks.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, track.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}
	if err != nil {
		log.Printf("getting track: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get track")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTrack stores a track (POST /api/tracks).
// An omitted id is filled with a random UUID.
func (h *Handlers) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var t track.Track
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if t.ID == "" {
		t.ID = h.newID()
	}

	h.save(w, r, &t)
}

// importRequest is the body of POST /api/tracks/import.
type importRequest struct {
	ID        string `json:"id"`
	SourceURL string `json:"source_url"`
	AudioPath string `json:"audio_path"`
}

// ImportTrack builds a track from a Spotify link and stores it (POST /api/tracks/import).
func (h *Handlers) ImportTrack(w http.ResponseWriter, r *http.Request) {
	if h.resolver == nil {
		writeError(w, http.StatusServiceUnavailable, "Track import is not configured")
		return
	}

	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	md, err := h.resolver.Resolve(r.Context(), req.SourceURL)
	if errors.Is(err, spotify.ErrInvalidSource) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		log.Printf("resolving %s: %v", req.SourceURL, err)
		writeError(w, http.StatusBadGateway, "Failed to fetch track metadata")
		return
	}

	t := track.Track{
		ID:              req.ID,
		Title:           md.Title,
		Artist:          md.Artist,
		SourceURL:       req.SourceURL,
		AudioPath:       req.AudioPath,
		CoverArtURL:     md.CoverArtURL,
		BPM:             md.BPM,
		DurationSeconds: md.DurationSeconds,
	}
	if t.ID == "" {
		t.ID = h.newID()
	}

	h.save(w, r, &t)
}

// save validates and stores t, answering 201 with the stored track.
func (h *Handlers) save(w http.ResponseWriter, r *http.Request, t *track.Track) {
	if err := t.Validate(); err != nil {
		var verr *track.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Detail: verr.Error(),
				Fields: verr.Fields,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to validate track")
		return
	}

	if err := h.tracks.Save(r.Context(), t); err != nil {
		log.Printf("saving track %s: %v", t.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to save track")
		return
	}

	w.Header().Set("Location", "/api/tracks/"+t.ID)
	writeJSON(w, http.StatusCreated, t)
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Detail string   `json:"detail"`
	Fields []string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
