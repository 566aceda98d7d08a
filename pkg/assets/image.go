package assets

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/moverboard/pkg/render/board/compose"
)

// MIME types the resolvers produce.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMEWebP = "image/webp"
	MIMESVG  = "image/svg+xml"
)

// Image is a resolved asset.
type Image struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`

	cached bool
}

// DataURI returns the image as a base64 data: URI.
func (img *Image) DataURI() string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Decode decodes raster images. SVG cannot be decoded and returns an error.
func (img *Image) Decode() (image.Image, error) {
	return imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
}

// Asset converts img for the page composer. A nil image yields nil.
func (img *Image) Asset() *compose.Asset {
	if img == nil {
		return nil
	}
	return &compose.Asset{MIME: img.MIME, Data: img.Data}
}

// Assets converts a slice of images, preserving nil entries.
func Assets(imgs []*Image) []*compose.Asset {
	out := make([]*compose.Asset, len(imgs))
	for i, img := range imgs {
		out[i] = img.Asset()
	}
	return out
}

// Normalize crops img to a size×size square around its center and
// re-encodes it as PNG. SVG images and a size below 1 return img unchanged.
func Normalize(img *Image, size int) (*Image, error) {
	if img == nil || size < 1 || img.MIME == MIMESVG {
		return img, nil
	}
	src, err := img.Decode()
	if err != nil {
		return nil, err
	}
	dst := imaging.Fill(src, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.PNG); err != nil {
		return nil, err
	}
	return &Image{MIME: MIMEPNG, Data: buf.Bytes()}, nil
}

// detectMIME prefers a declared content type and falls back to sniffing.
func detectMIME(declared string, data []byte) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mt, "image/") {
			return mt
		}
	}
	head := bytes.TrimSpace(data[:min(len(data), 512)])
	if bytes.HasPrefix(head, []byte("<svg")) || (bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))) {
		return MIMESVG
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}

func isImageMIME(mt string) bool {
	return strings.HasPrefix(mt, "image/")
}
