package download

// Package download implements the delivery pipeline built on top of yt-dlp
// (via the platform engine): a private work directory per request, the
// upload-size gate, video/document classification, and the guarantee that
// no temporary file outlives the call.
