package operations_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/Sanidhya49/binsavvy-cli/client"
	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/pkg/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu    sync.Mutex
	seen  []string
	errOn string
}

func (f *fakeUploader) UploadImage(_ context.Context, req client.UploadRequest) (*client.ImageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if filepath.Base(req.FilePath) == f.errOn {
		return nil, errors.New("server rejected upload")
	}
	f.seen = append(f.seen, filepath.Base(req.FilePath))
	return &client.ImageRecord{ID: "img-" + filepath.Base(req.FilePath), Status: "pending"}, nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}
}

func TestFindImages(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.png", "notes.txt")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o750))
	writeFiles(t, sub, "c.webp")

	flat, err := operations.FindImages(dir, false)
	require.NoError(t, err)
	assert.Len(t, flat, 2)

	recursive, err := operations.FindImages(dir, true)
	require.NoError(t, err)
	assert.Len(t, recursive, 3)
}

func TestUploadBatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.jpg", "c.jpg")
	files, err := operations.FindImages(dir, false)
	require.NoError(t, err)

	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	history := db.NewUploadRepository(gdb)

	uploader := &fakeUploader{}
	results := operations.UploadBatch(context.Background(), uploader, history, files, operations.BatchOptions{
		Latitude: 12.97, Longitude: 77.59, Workers: 2,
	})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.False(t, r.Skipped)
		assert.NotEmpty(t, r.RemoteID)
	}

	stored, err := history.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestUploadBatch_SkipsDuplicatesByChecksum(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg")
	files, err := operations.FindImages(dir, false)
	require.NoError(t, err)

	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	history := db.NewUploadRepository(gdb)

	uploader := &fakeUploader{}
	opts := operations.BatchOptions{Workers: 1}

	first := operations.UploadBatch(context.Background(), uploader, history, files, opts)
	require.Len(t, first, 1)
	require.NoError(t, first[0].Err)
	assert.False(t, first[0].Skipped)

	second := operations.UploadBatch(context.Background(), uploader, history, files, opts)
	require.Len(t, second, 1)
	assert.True(t, second[0].Skipped)
	assert.Equal(t, first[0].RemoteID, second[0].RemoteID)
	assert.Len(t, uploader.seen, 1, "the duplicate must not reach the network")
}

func TestUploadBatch_OneFailureDoesNotStopTheRest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "bad.jpg", "c.jpg")
	files, err := operations.FindImages(dir, false)
	require.NoError(t, err)

	uploader := &fakeUploader{errOn: "bad.jpg"}
	results := operations.UploadBatch(context.Background(), uploader, nil, files, operations.BatchOptions{Workers: 2})

	require.Len(t, results, 3)
	var failed, ok []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, filepath.Base(r.File))
		} else {
			ok = append(ok, filepath.Base(r.File))
		}
	}
	sort.Strings(ok)
	assert.Equal(t, []string{"bad.jpg"}, failed)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, ok)
}
