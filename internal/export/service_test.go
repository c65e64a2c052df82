package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"starforge/internal/system"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type recordingStore struct {
	bucket  string
	key     string
	body    []byte
	opts    minio.PutObjectOptions
	removed []string
	err     error
}

func (p *recordingStore) PutObject(_ context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if p.err != nil {
		return minio.UploadInfo{}, p.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if int64(len(body)) != size {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}
	p.bucket, p.key, p.body, p.opts = bucket, key, body, opts
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (p *recordingStore) RemoveObject(_ context.Context, bucket, key string, _ minio.RemoveObjectOptions) error {
	if p.err != nil {
		return p.err
	}
	p.removed = append(p.removed, bucket+"/"+key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExportUploadsJSON(t *testing.T) {
	putter := &recordingStore{}
	svc := NewService(putter, "star-systems", testLogger())

	sys := &system.System{ID: uuid.MustParse("6f1c1d7e-8d0b-4c1e-9a52-3c3b1b0e8a11"), Name: "Sol", Seed: 42}
	key, err := svc.Export(context.Background(), sys)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if key != "systems/6f1c1d7e-8d0b-4c1e-9a52-3c3b1b0e8a11.json" || putter.key != key {
		t.Errorf("key = %q, uploaded as %q", key, putter.key)
	}
	if putter.bucket != "star-systems" {
		t.Errorf("bucket = %q", putter.bucket)
	}
	if putter.opts.ContentType != "application/json" {
		t.Errorf("content type = %q", putter.opts.ContentType)
	}
	if putter.opts.UserMetadata["seed"] != "42" {
		t.Errorf("seed metadata = %q", putter.opts.UserMetadata["seed"])
	}

	var decoded system.System
	if err := json.Unmarshal(putter.body, &decoded); err != nil {
		t.Fatalf("uploaded body is not JSON: %v", err)
	}
	if decoded.ID != sys.ID || decoded.Name != "Sol" {
		t.Errorf("uploaded system = %+v", decoded)
	}
}

func TestExportWrapsUploadErrors(t *testing.T) {
	uploadErr := errors.New("access denied")
	svc := NewService(&recordingStore{err: uploadErr}, "star-systems", testLogger())

	_, err := svc.Export(context.Background(), &system.System{ID: uuid.New()})
	if !errors.Is(err, uploadErr) {
		t.Fatalf("expected wrapped upload error, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	store := &recordingStore{}
	svc := NewService(store, "star-systems", testLogger())

	if err := svc.Remove(context.Background(), "systems/a.json"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != "star-systems/systems/a.json" {
		t.Errorf("removed = %v", store.removed)
	}

	store.err = errors.New("access denied")
	if err := svc.Remove(context.Background(), "systems/b.json"); !errors.Is(err, store.err) {
		t.Fatalf("expected wrapped remove error, got %v", err)
	}
}
