package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Partial-download leftovers yt-dlp keeps next to the artifact
var skippedExtensions = []string{".part", ".ytdl"}

// FindArtifact locates the finished download inside a work directory when
// the engine's reported path is missing (merging changes the extension).
// The newest regular file wins; partial-download leftovers are skipped.
func FindArtifact(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read work directory %s: %w", dir, err)
	}

	best := ""
	var bestMod int64 = -1
	for _, entry := range entries {
		if entry.IsDir() || isPartialFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > bestMod {
			best = filepath.Join(dir, entry.Name())
			bestMod = mod
		}
	}

	if best == "" {
		return "", fmt.Errorf("no downloaded file found in %s", dir)
	}
	return best, nil
}

func isPartialFile(name string) bool {
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
