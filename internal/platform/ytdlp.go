package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/tgrab/tgrab/internal/model"
)

// Timeout constants
const (
	DefaultExtractTimeout = 60 * time.Second
)

// Output settings
const (
	OutputTemplate = "%(title)s.%(ext)s"
	MergeContainer = "mp4"
)

// Engine drives yt-dlp through the go-ytdlp wrapper. It implements both
// collaborator contracts: metadata extraction and selector-based download.
type Engine struct {
	extractTimeout time.Duration
}

// NewEngine creates an engine with the default extraction timeout.
func NewEngine() *Engine {
	return &Engine{extractTimeout: DefaultExtractTimeout}
}

// SetExtractTimeout overrides the metadata extraction timeout.
func (e *Engine) SetExtractTimeout(timeout time.Duration) {
	e.extractTimeout = timeout
}

// Extract fetches metadata for a URL without downloading anything.
// Playlist results collapse to their first entry; an empty playlist is an
// extraction failure.
func (e *Engine) Extract(ctx context.Context, url string) (*model.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.extractTimeout)
	defer cancel()

	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		NoPlaylist().
		SkipDownload().
		DumpSingleJSON()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, &ExtractionError{URL: url, Err: err}
	}

	entry, err := decodeFirstEntry(result.Stdout)
	if err != nil {
		return nil, &ExtractionError{URL: url, Err: err}
	}

	return entry.toMediaInfo(url), nil
}

// Fetch downloads the stream(s) named by selector into destDir, which must
// be private to this call, and reports where the finished artifact landed.
// File size is left for the caller to probe.
func (e *Engine) Fetch(ctx context.Context, url, selector, destDir string) (*model.DownloadResult, error) {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		NoProgress().
		NoPlaylist().
		Format(selector).
		MergeOutputFormat(MergeContainer).
		Output(filepath.Join(destDir, OutputTemplate)).
		PrintJSON()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, &DownloadError{URL: url, Selector: selector, Err: err}
	}

	entry, err := decodeFirstEntry(result.Stdout)
	if err != nil {
		return nil, &DownloadError{URL: url, Selector: selector, Err: err}
	}

	path := entry.Filename
	// Merging can change the extension after the filename was reported, so
	// the reported path may not exist anymore.
	if _, statErr := os.Stat(path); path == "" || statErr != nil {
		path, err = FindArtifact(destDir)
		if err != nil {
			return nil, &DownloadError{URL: url, Selector: selector, Err: err}
		}
	}

	ext := entry.Ext
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	return &model.DownloadResult{
		FilePath: path,
		FileName: filepath.Base(path),
		Ext:      ext,
	}, nil
}

// mediaJSON mirrors the subset of the yt-dlp info dict the bot consumes.
type mediaJSON struct {
	Type       string `json:"_type"`
	Title      string `json:"title"`
	WebpageURL string `json:"webpage_url"`
	Thumbnail  string `json:"thumbnail"`
	Thumbnails []struct {
		URL        string `json:"url"`
		Height     int    `json:"height"`
		Preference int    `json:"preference"`
	} `json:"thumbnails"`
	Formats []struct {
		FormatID string `json:"format_id"`
		Ext      string `json:"ext"`
		Height   int    `json:"height"`
		VCodec   string `json:"vcodec"`
		ACodec   string `json:"acodec"`
	} `json:"formats"`
	Entries  []mediaJSON `json:"entries"`
	Filename string      `json:"_filename"`
	Ext      string      `json:"ext"`
}

// decodeFirstEntry parses the first JSON document in the engine's stdout
// and collapses playlist results to their first entry.
func decodeFirstEntry(stdout string) (*mediaJSON, error) {
	dec := json.NewDecoder(strings.NewReader(stdout))
	var entry mediaJSON
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	if entry.Type == "playlist" {
		if len(entry.Entries) == 0 {
			return nil, errors.New("playlist is empty or unsupported")
		}
		entry = entry.Entries[0]
	}
	return &entry, nil
}

func (m *mediaJSON) toMediaInfo(requestURL string) *model.MediaInfo {
	info := &model.MediaInfo{
		Title:        m.Title,
		WebpageURL:   m.WebpageURL,
		ThumbnailURL: m.Thumbnail,
	}
	if info.WebpageURL == "" {
		info.WebpageURL = requestURL
	}

	for _, t := range m.Thumbnails {
		info.Thumbnails = append(info.Thumbnails, model.Thumbnail{
			URL:        t.URL,
			Height:     t.Height,
			Preference: t.Preference,
		})
	}

	for _, f := range m.Formats {
		info.Formats = append(info.Formats, model.StreamFormat{
			ID:     f.FormatID,
			Ext:    f.Ext,
			Height: f.Height,
			VCodec: f.VCodec,
			ACodec: f.ACodec,
		})
	}

	return info
}
