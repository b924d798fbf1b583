package download

import (
	"context"

	"github.com/tgrab/tgrab/internal/model"
)

// Engine is the extraction/download collaborator (yt-dlp in production).
type Engine interface {
	// Extract fetches metadata for a URL without downloading anything.
	Extract(ctx context.Context, url string) (*model.MediaInfo, error)

	// Fetch downloads the stream(s) named by selector into destDir and
	// reports where the artifact landed. destDir is private to the call.
	Fetch(ctx context.Context, url, selector, destDir string) (*model.DownloadResult, error)
}

// Uploader sends a finished artifact to the chat the request came from.
// Implementations are bound to one conversation.
type Uploader interface {
	SendVideo(ctx context.Context, res *model.DownloadResult) error
	SendDocument(ctx context.Context, res *model.DownloadResult) error
}
