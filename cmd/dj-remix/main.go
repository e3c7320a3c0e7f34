// Command dj-remix runs the AI DJ Remixing API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"syscall"

	"github.com/oklog/run"

	"github.com/justestif/go-dj-remix/internal/config"
	"github.com/justestif/go-dj-remix/internal/db"
	"github.com/justestif/go-dj-remix/internal/spotify"
	"github.com/justestif/go-dj-remix/internal/storage"
	"github.com/justestif/go-dj-remix/internal/track"
	"github.com/justestif/go-dj-remix/internal/web"
)

func main() {
	if err := runServer(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	// Directories must exist before the file server starts
	if err := storage.EnsureDirs(cfg.Layout); err != nil {
		return fmt.Errorf("preparing directories: %w", err)
	}

	ctx := context.Background()

	var tracks track.Store = track.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		tracks = database.Tracks()
		log.Println("Storing tracks in PostgreSQL")
	} else {
		log.Println("Storing tracks in memory")
	}

	var resolver web.TrackResolver
	if cfg.SpotifyEnabled() {
		resolver = spotify.NewWithCredentials(ctx, cfg.SpotifyID, cfg.SpotifySecret)
		log.Println("Spotify track import enabled")
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:          cfg.ListenAddr,
		AllowedOrigin: cfg.AllowedOrigin,
		AudioDir:      cfg.Layout.AudioDir,
		Tracks:        tracks,
		Resolver:      resolver,
		HTTPLog:       cfg.HTTPLog,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	g.Add(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	}, func(error) {
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), web.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	})

	err = g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		log.Printf("Received %v, server stopped", sigErr.Signal)
		return nil
	}
	return err
}
