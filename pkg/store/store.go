// Package store keeps finished renders so the HTTP API can serve pages
// after the request that produced them.
//
// Backends:
//   - memory: in-process, backed by patrickmn/go-cache; the serve default
//   - file: one JSON file per render for single-host deployments
//   - redis: shared storage with native key expiry
//   - mongo: a "renders" collection with a TTL index on expires_at
//
// Every backend treats an expired render as missing and returns
// [ErrNotFound].
package store

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	mverrors "github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/pipeline"
)

// DefaultTTL is how long a render stays retrievable.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when a render does not exist or has expired.
var ErrNotFound = errors.New("render not found")

// ErrTooLarge is returned by backends with a per-render size limit.
var ErrTooLarge = errors.New("render too large to store")

// Artifact is one rendered file.
type Artifact struct {
	Format string `json:"format" bson:"format"`
	Data   []byte `json:"data" bson:"data"`
}

// Render is a stored pipeline result.
type Render struct {
	ID        string       `json:"id" bson:"_id"`
	TitleMain string       `json:"title_main" bson:"title_main"`
	TitleSub  string       `json:"title_sub" bson:"title_sub"`
	Pages     int          `json:"pages" bson:"pages"`
	Records   int          `json:"records" bson:"records"`
	Formats   []string     `json:"formats" bson:"formats"`
	Artifacts [][]Artifact `json:"artifacts,omitempty" bson:"artifacts"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time    `json:"expires_at" bson:"expires_at"`
}

// NewRender captures result under a fresh random ID.
func NewRender(result *pipeline.Result, ttl time.Duration) *Render {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	r := &Render{
		ID:        uuid.NewString(),
		Pages:     result.PageCount(),
		Formats:   append([]string(nil), result.Formats...),
		Artifacts: make([][]Artifact, len(result.Artifacts)),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if result.Request != nil {
		r.TitleMain = result.Request.TitleMain
		r.TitleSub = result.Request.TitleSub
		r.Records = len(result.Request.Records)
	}
	for i, arts := range result.Artifacts {
		for _, f := range r.Formats {
			if data, ok := arts[f]; ok {
				r.Artifacts[i] = append(r.Artifacts[i], Artifact{Format: f, Data: data})
			}
		}
	}
	return r
}

// IsExpired reports whether the render's TTL has passed.
func (r *Render) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// PageCount returns the number of pages.
func (r *Render) PageCount() int { return r.Pages }

// Artifact returns the bytes of 1-based page n in format.
func (r *Render) Artifact(n int, format string) ([]byte, error) {
	if err := mverrors.ValidatePageNumber(n, len(r.Artifacts)); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(r.Artifacts[n-1], func(a Artifact) bool { return a.Format == format })
	if i < 0 {
		return nil, mverrors.New(mverrors.ErrCodeNotFound, "format %s was not rendered", format)
	}
	return r.Artifacts[n-1][i].Data, nil
}

// Meta returns a copy without artifact bytes.
func (r *Render) Meta() Render {
	m := *r
	m.Artifacts = nil
	return m
}

// Store is the interface for render storage backends.
type Store interface {
	// Get returns ErrNotFound for unknown, malformed or expired IDs.
	Get(ctx context.Context, id string) (*Render, error)
	Put(ctx context.Context, r *Render) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// validID rejects anything that is not a UUID, which also keeps IDs safe
// to use as file names and keys.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
