// Package storage prepares the on-disk layout the service reads and writes.
package storage

import (
	"errors"
	"fmt"
	"os"
)

const dirPerm = 0o755

// Default directories, relative to the working directory.
const (
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultAudioDir     = "static/audio"
)

// Layout names the directories the service depends on.
type Layout struct {
	RawDir       string // downloaded source audio
	ProcessedDir string // intermediate processing output
	AudioDir     string // audio served under /static/audio/
}

// DefaultLayout returns the layout rooted at the working directory.
func DefaultLayout() Layout {
	return Layout{
		RawDir:       DefaultRawDir,
		ProcessedDir: DefaultProcessedDir,
		AudioDir:     DefaultAudioDir,
	}
}

// Dirs returns the layout's directories in creation order.
func (l Layout) Dirs() []string {
	return []string{l.RawDir, l.ProcessedDir, l.AudioDir}
}

// EnsureDirs creates every directory in the layout that does not exist yet.
// Directories that already exist, including ones created concurrently by
// another process, are not an error.
func EnsureDirs(l Layout) error {
	for _, dir := range l.Dirs() {
		if dir == "" {
			return errors.New("empty directory path in layout")
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}
