package model

import (
	"path/filepath"
	"strings"
)

// Extensions Telegram clients play inline; everything else is sent as a document
var videoExtensions = []string{"mp4", "mov", "m4v"}

// StreamFormat describes a single stream reported by the extraction engine.
type StreamFormat struct {
	ID     string
	Ext    string
	Height int
	VCodec string
	ACodec string
}

// HasVideo reports whether the stream carries a video track.
func (f StreamFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// Thumbnail is one preview-image candidate from the extraction engine.
type Thumbnail struct {
	URL        string
	Height     int
	Preference int
}

// MediaInfo is the metadata for a single media item.
type MediaInfo struct {
	Title        string
	WebpageURL   string
	ThumbnailURL string
	Thumbnails   []Thumbnail
	Formats      []StreamFormat
}

// FormatChoice is one downloadable quality offered to the user.
// Selector is an opaque instruction for the download engine,
// Label is what the button shows.
type FormatChoice struct {
	Selector string
	Label    string
}

// DownloadResult describes a finished download on disk. The backing file
// lives in a private work directory owned by the download orchestrator.
type DownloadResult struct {
	FilePath string
	FileName string
	Ext      string
	Size     int64
}

// IsVideo reports whether the artifact should be uploaded as a playable
// video rather than a generic document.
func (r DownloadResult) IsVideo() bool {
	ext := strings.ToLower(strings.TrimPrefix(r.Ext, "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(r.FilePath), "."))
	}
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// DisplayTitle returns the title, falling back to the page URL.
func (m *MediaInfo) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.WebpageURL
}
