package platform

// Package platform contains the external tooling glue: the yt-dlp engine
// adapter (via github.com/lrstanley/go-ytdlp) for metadata extraction and
// selector-based downloads, and filesystem helpers for locating artifacts.
