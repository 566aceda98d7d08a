package assets

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/matzehuels/moverboard/pkg/errors"
)

// DataResolver decodes data: URIs (RFC 2397).
type DataResolver struct{}

// Resolve decodes ref. A missing media type is sniffed from the payload.
func (DataResolver) Resolve(_ context.Context, ref string) (*Image, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRef, "not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRef, "malformed data URI")
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRef, err, "decode data URI")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeAsset, "empty data URI")
	}

	mt := detectMIME(mediaType, data)
	if !isImageMIME(mt) {
		return nil, errors.New(errors.ErrCodeAsset, "data URI is %s, not an image", mt)
	}
	return &Image{MIME: mt, Data: data}, nil
}
