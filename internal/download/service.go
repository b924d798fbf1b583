package download

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Upload limits
const (
	// DefaultMaxUploadBytes stays under the Telegram bot upload limit
	// (about 50 MB for bot accounts).
	DefaultMaxUploadBytes int64 = 49 << 20

	workDirPattern = "tgrab-*"
)

// OversizeError reports an artifact over the upload ceiling. The artifact
// has already been removed when this is returned; the user should pick a
// lower quality.
type OversizeError struct {
	Size  int64
	Limit int64
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("artifact is %d bytes, upload ceiling is %d", e.Size, e.Limit)
}

// LimitMB returns the ceiling in whole megabytes for user-facing messages.
func (e *OversizeError) LimitMB() int64 {
	return e.Limit / 1024 / 1024
}

// Service orchestrates a single download-and-upload round trip.
type Service struct {
	engine         Engine
	maxUploadBytes int64
}

// NewService creates an orchestrator on top of the given engine. A
// non-positive limit falls back to DefaultMaxUploadBytes.
func NewService(engine Engine, maxUploadBytes int64) *Service {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Service{engine: engine, maxUploadBytes: maxUploadBytes}
}

// Deliver downloads url with the given selector into a fresh private work
// directory, rejects artifacts over the upload ceiling, and hands the file
// to the uploader as a video or a document depending on its extension.
// The work directory and everything in it are removed before Deliver
// returns, on every path.
func (s *Service) Deliver(ctx context.Context, url, selector string, up Uploader) error {
	dir, err := os.MkdirTemp("", workDirPattern)
	if err != nil {
		return fmt.Errorf("failed to allocate work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove work directory")
		}
	}()

	res, err := s.engine.Fetch(ctx, url, selector, dir)
	if err != nil {
		return err
	}

	// Fail open on probe errors: an unreadable size counts as zero and the
	// upload is attempted anyway.
	if info, statErr := os.Stat(res.FilePath); statErr == nil {
		res.Size = info.Size()
	}

	if res.Size > s.maxUploadBytes {
		log.Info().Str("url", url).Int64("size", res.Size).
			Int64("limit", s.maxUploadBytes).Msg("Rejecting oversized artifact")
		return &OversizeError{Size: res.Size, Limit: s.maxUploadBytes}
	}

	if res.IsVideo() {
		return up.SendVideo(ctx, res)
	}
	return up.SendDocument(ctx, res)
}
