package assets

import (
	"context"
	"strings"

	"github.com/matzehuels/moverboard/pkg/errors"
)

// Reference kinds, also reported to the observability asset hooks.
const (
	KindHTTP = "http"
	KindData = "data"
	KindFile = "file"
)

// Resolver turns a reference into image bytes.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (*Image, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(ctx context.Context, ref string) (*Image, error)

func (f ResolverFunc) Resolve(ctx context.Context, ref string) (*Image, error) { return f(ctx, ref) }

// Kind classifies a reference by its scheme.
func Kind(ref string) string {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return KindHTTP
	case strings.HasPrefix(ref, "data:"):
		return KindData
	default:
		return KindFile
	}
}

// Mux dispatches references to a resolver per kind. A nil entry makes
// that kind unsupported.
type Mux struct {
	HTTP Resolver
	Data Resolver
	File Resolver
}

// NewMux returns a Mux with the default resolver for every kind. Files
// resolve relative to the working directory.
func NewMux() *Mux {
	return &Mux{
		HTTP: NewHTTPResolver(),
		Data: DataResolver{},
		File: NewFileResolver(""),
	}
}

// Resolve validates ref and hands it to the resolver for its kind.
func (m *Mux) Resolve(ctx context.Context, ref string) (*Image, error) {
	if err := errors.ValidateRef(ref); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, errors.New(errors.ErrCodeInvalidRef, "empty reference")
	}

	var r Resolver
	switch Kind(ref) {
	case KindHTTP:
		r = m.HTTP
	case KindData:
		r = m.Data
	case KindFile:
		r = m.File
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s references are disabled", Kind(ref))
	}
	return r.Resolve(ctx, ref)
}
