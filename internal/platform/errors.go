package platform

import "fmt"

// ExtractionError reports that metadata could not be obtained for a URL:
// bad or unsupported link, empty playlist, engine failure.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DownloadError reports that the engine failed to produce an artifact for a
// resolved selector.
type DownloadError struct {
	URL      string
	Selector string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s (%s): %v", e.URL, e.Selector, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
