// Package config loads service configuration from flags, environment
// variables and an optional config file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"

	"github.com/peterbourgon/ff"

	"github.com/justestif/go-dj-remix/internal/storage"
)

const (
	// Name is the program name used for the flag set.
	Name = "dj-remix"

	// EnvPrefix prefixes every environment variable, e.g. DJ_REMIX_LISTEN_ADDR.
	EnvPrefix = "DJ_REMIX"

	// DefaultListenAddr listens on all interfaces.
	DefaultListenAddr = "0.0.0.0:8000"

	// DefaultAllowedOrigin is the frontend dev server.
	DefaultAllowedOrigin = "http://localhost:3000"
)

var (
	// ErrInvalidOrigin is returned when the allowed origin is not an absolute http(s) URL.
	ErrInvalidOrigin = errors.New("allowed origin must be an absolute http or https URL")

	// ErrPartialSpotifyCredentials is returned when only one of the Spotify credentials is set.
	ErrPartialSpotifyCredentials = errors.New("spotify-id and spotify-secret must be set together")
)

// Config holds service configuration.
type Config struct {
	ListenAddr    string
	AllowedOrigin string
	Layout        storage.Layout
	DatabaseURL   string // empty keeps tracks in memory
	SpotifyID     string
	SpotifySecret string
	HTTPLog       bool
}

// SpotifyEnabled reports whether Spotify credentials were provided.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

// Load parses args (without the program name), falling back to
// DJ_REMIX_* environment variables and then to -config-path.
func Load(args []string) (*Config, error) {
	set := flag.NewFlagSet(Name, flag.ContinueOnError)

	cfg := &Config{}
	set.StringVar(&cfg.ListenAddr, "listen-addr", DefaultListenAddr, "listen address")
	set.StringVar(&cfg.AllowedOrigin, "allowed-origin", DefaultAllowedOrigin, "origin allowed to make credentialed cross-origin requests")
	set.StringVar(&cfg.Layout.RawDir, "raw-dir", storage.DefaultRawDir, "path to raw source audio")
	set.StringVar(&cfg.Layout.ProcessedDir, "processed-dir", storage.DefaultProcessedDir, "path to processed audio")
	set.StringVar(&cfg.Layout.AudioDir, "audio-dir", storage.DefaultAudioDir, "path to audio served under /static/audio/")
	set.StringVar(&cfg.DatabaseURL, "database-url", "", "PostgreSQL connection URL (optional)")
	set.StringVar(&cfg.SpotifyID, "spotify-id", "", "Spotify client ID for track import (optional)")
	set.StringVar(&cfg.SpotifySecret, "spotify-secret", "", "Spotify client secret for track import (optional)")
	set.BoolVar(&cfg.HTTPLog, "http-log", true, "http request logging")
	_ = set.String("config-path", "", "path to config (optional)")

	if err := ff.Parse(set, args,
		ff.WithConfigFileFlag("config-path"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix(EnvPrefix),
	); err != nil {
		return nil, fmt.Errorf("parsing args: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address is empty")
	}
	for _, dir := range c.Layout.Dirs() {
		if dir == "" {
			return errors.New("directory paths must not be empty")
		}
	}

	u, err := url.Parse(c.AllowedOrigin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOrigin, c.AllowedOrigin)
	}

	if (c.SpotifyID == "") != (c.SpotifySecret == "") {
		return ErrPartialSpotifyCredentials
	}
	return nil
}
