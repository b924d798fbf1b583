package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tgrab/tgrab/internal/model"
)

// fakeEngine writes a file of the configured size into the work directory
// and records which directory it was given.
type fakeEngine struct {
	mu       sync.Mutex
	fileName string
	size     int
	err      error
	missing  bool // report a path that does not exist
	destDirs []string
}

func (f *fakeEngine) Extract(ctx context.Context, url string) (*model.MediaInfo, error) {
	return nil, errors.New("not used")
}

func (f *fakeEngine) Fetch(ctx context.Context, url, selector, destDir string) (*model.DownloadResult, error) {
	f.mu.Lock()
	f.destDirs = append(f.destDirs, destDir)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	path := filepath.Join(destDir, f.fileName)
	if !f.missing {
		if err := os.WriteFile(path, make([]byte, f.size), 0644); err != nil {
			return nil, err
		}
	}
	return &model.DownloadResult{
		FilePath: path,
		FileName: f.fileName,
		Ext:      filepath.Ext(f.fileName)[1:],
	}, nil
}

func (f *fakeEngine) lastDir() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destDirs[len(f.destDirs)-1]
}

type fakeUploader struct {
	mu        sync.Mutex
	videos    int
	documents int
	err       error
	sizes     []int64
}

func (f *fakeUploader) SendVideo(ctx context.Context, res *model.DownloadResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos++
	f.sizes = append(f.sizes, res.Size)
	return f.err
}

func (f *fakeUploader) SendDocument(ctx context.Context, res *model.DownloadResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents++
	f.sizes = append(f.sizes, res.Size)
	return f.err
}

func assertDirGone(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("work directory %s still exists after Deliver", dir)
	}
}

func TestDeliver_VideoUploadAndCleanup(t *testing.T) {
	engine := &fakeEngine{fileName: "clip.mp4", size: 1024}
	up := &fakeUploader{}
	svc := NewService(engine, 0)

	if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}
	if up.videos != 1 || up.documents != 0 {
		t.Errorf("uploads = %d videos, %d documents; expected exactly one video", up.videos, up.documents)
	}
	if up.sizes[0] != 1024 {
		t.Errorf("uploaded size = %d, expected 1024", up.sizes[0])
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_DocumentClassification(t *testing.T) {
	engine := &fakeEngine{fileName: "track.mp3", size: 10}
	up := &fakeUploader{}
	svc := NewService(engine, 0)

	if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}
	if up.videos != 0 || up.documents != 1 {
		t.Errorf("uploads = %d videos, %d documents; expected exactly one document", up.videos, up.documents)
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_OversizedNoUpload(t *testing.T) {
	engine := &fakeEngine{fileName: "clip.mp4", size: 2048}
	up := &fakeUploader{}
	svc := NewService(engine, 1024)

	err := svc.Deliver(context.Background(), "https://example.com", "best", up)
	var oversize *OversizeError
	if !errors.As(err, &oversize) {
		t.Fatalf("Deliver() = %v, expected OversizeError", err)
	}
	if oversize.Size != 2048 || oversize.Limit != 1024 {
		t.Errorf("OversizeError = %+v", oversize)
	}
	if up.videos+up.documents != 0 {
		t.Error("an upload was attempted for an oversized artifact")
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_UploadFailureStillCleansUp(t *testing.T) {
	engine := &fakeEngine{fileName: "clip.mp4", size: 16}
	up := &fakeUploader{err: errors.New("network gone")}
	svc := NewService(engine, 0)

	if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err == nil {
		t.Fatal("Deliver() succeeded despite upload failure")
	}
	if up.videos != 1 {
		t.Errorf("videos = %d, expected exactly one attempt", up.videos)
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_EngineFailureStillCleansUp(t *testing.T) {
	engine := &fakeEngine{err: errors.New("extraction blew up")}
	up := &fakeUploader{}
	svc := NewService(engine, 0)

	if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err == nil {
		t.Fatal("Deliver() succeeded despite engine failure")
	}
	if up.videos+up.documents != 0 {
		t.Error("an upload was attempted after an engine failure")
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_ProbeFailureFailsOpen(t *testing.T) {
	// The engine reports a path that does not exist; the size probe fails,
	// counts as zero, and the upload still happens.
	engine := &fakeEngine{fileName: "clip.mp4", missing: true}
	up := &fakeUploader{}
	svc := NewService(engine, 1024)

	if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}
	if up.videos != 1 {
		t.Errorf("videos = %d, expected the upload to proceed", up.videos)
	}
	if up.sizes[0] != 0 {
		t.Errorf("uploaded size = %d, expected 0 after a failed probe", up.sizes[0])
	}
	assertDirGone(t, engine.lastDir())
}

func TestDeliver_ConcurrentRequestsGetPrivateDirs(t *testing.T) {
	engine := &fakeEngine{fileName: "clip.mp4", size: 8}
	up := &fakeUploader{}
	svc := NewService(engine, 0)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Deliver(context.Background(), "https://example.com", "best", up); err != nil {
				t.Errorf("Deliver() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if up.videos != 2 {
		t.Errorf("videos = %d, expected both deliveries to upload", up.videos)
	}
	if len(engine.destDirs) != 2 || engine.destDirs[0] == engine.destDirs[1] {
		t.Errorf("work dirs = %v, expected two distinct directories", engine.destDirs)
	}
	for _, dir := range engine.destDirs {
		assertDirGone(t, dir)
	}
}
