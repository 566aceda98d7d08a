package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/moverboard/pkg/chart"
	mverrors "github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
)

func testResult() *pipeline.Result {
	return &pipeline.Result{
		Request: chart.Example(),
		Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
		Pages:   make([]layout.Page, 2),
		Artifacts: []pipeline.Artifacts{
			{pipeline.FormatSVG: []byte("<svg>1</svg>"), pipeline.FormatPNG: []byte("png1")},
			{pipeline.FormatSVG: []byte("<svg>2</svg>"), pipeline.FormatPNG: []byte("png2")},
		},
	}
}

func TestNewRender(t *testing.T) {
	r := NewRender(testResult(), time.Hour)

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", r.ID, err)
	}
	if r.TitleMain != "Sep 15" || r.Records != 8 || r.Pages != 2 {
		t.Errorf("metadata = %q/%d/%d, want Sep 15/8/2", r.TitleMain, r.Records, r.Pages)
	}
	if got := r.ExpiresAt.Sub(r.CreatedAt); got != time.Hour {
		t.Errorf("ttl = %v, want 1h", got)
	}

	data, err := r.Artifact(2, pipeline.FormatPNG)
	if err != nil || string(data) != "png2" {
		t.Errorf("Artifact(2, png) = %q, %v; want png2", data, err)
	}
	if _, err := r.Artifact(0, pipeline.FormatSVG); !mverrors.Is(err, mverrors.ErrCodePageNotFound) {
		t.Errorf("Artifact(0) error = %v, want PAGE_NOT_FOUND", err)
	}
	if _, err := r.Artifact(1, pipeline.FormatPDF); !mverrors.Is(err, mverrors.ErrCodeNotFound) {
		t.Errorf("Artifact(1, pdf) error = %v, want NOT_FOUND", err)
	}

	meta := r.Meta()
	if meta.Artifacts != nil || r.Artifacts == nil {
		t.Error("Meta() should drop artifacts without touching the original")
	}

	if d := NewRender(testResult(), 0); d.ExpiresAt.Sub(d.CreatedAt) != DefaultTTL {
		t.Errorf("zero ttl should use DefaultTTL")
	}
}

// testStore exercises the Store contract shared by every backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	r := NewRender(testResult(), time.Hour)
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != r.ID || got.Pages != 2 {
		t.Errorf("Get() = %s/%d, want %s/2", got.ID, got.Pages, r.ID)
	}
	data, err := got.Artifact(1, pipeline.FormatSVG)
	if err != nil || !bytes.Equal(data, []byte("<svg>1</svg>")) {
		t.Errorf("Artifact(1, svg) = %q, %v", data, err)
	}

	for _, id := range []string{uuid.NewString(), "../../etc/passwd", ""} {
		if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}

	expired := NewRender(testResult(), time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Put(ctx, expired); err != nil {
		t.Fatalf("Put(expired) error: %v", err)
	}
	if _, err := s.Get(ctx, expired.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(expired) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	testStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	live := NewRender(testResult(), time.Hour)
	old := NewRender(testResult(), time.Hour)
	old.ExpiresAt = time.Now().Add(-time.Hour)
	for _, r := range []*Render{live, old} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Cleanup() = %d, want 1", n)
	}
	if _, err := s.Get(ctx, live.ID); err != nil {
		t.Errorf("live render lost: %v", err)
	}
	if err := s.Put(ctx, &Render{ID: "not-a-uuid"}); err == nil {
		t.Error("Put(invalid id) should fail")
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("MOVERBOARD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MOVERBOARD_TEST_REDIS_URL not set")
	}
	s, err := NewRedisStore(context.Background(), url, "moverboard:test:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MOVERBOARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MOVERBOARD_TEST_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), uri, "moverboard_test")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestEncodeRenderLimit(t *testing.T) {
	small := NewRender(testResult(), time.Hour)
	if _, err := encodeRender(small); err != nil {
		t.Fatalf("encodeRender(small) error: %v", err)
	}

	big := NewRender(testResult(), time.Hour)
	big.Artifacts[0][0].Data = make([]byte, MaxDocumentBytes)
	_, err := encodeRender(big)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("encodeRender(big) error = %v, want ErrTooLarge", err)
	}
}
