package assets

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/moverboard/pkg/errors"
)

// FileResolver reads images from disk.
type FileResolver struct {
	base     string
	confined bool
}

// NewFileResolver resolves relative paths against base (the working
// directory when empty). Absolute paths are read as given.
func NewFileResolver(base string) *FileResolver {
	return &FileResolver{base: base}
}

// NewConfinedFileResolver only accepts relative paths without traversal,
// all resolved inside base. The HTTP server uses it so request bodies
// cannot read arbitrary files.
func NewConfinedFileResolver(base string) *FileResolver {
	return &FileResolver{base: base, confined: true}
}

// Resolve reads the file at ref. A leading file:// is stripped.
func (r *FileResolver) Resolve(_ context.Context, ref string) (*Image, error) {
	path := strings.TrimPrefix(ref, "file://")
	if r.confined {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.base, path)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", ref)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAsset, err, "read %s", ref)
	}

	mt := detectMIME(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), data)
	if !isImageMIME(mt) {
		return nil, errors.New(errors.ErrCodeAsset, "%s is %s, not an image", ref, mt)
	}
	return &Image{MIME: mt, Data: data}, nil
}
