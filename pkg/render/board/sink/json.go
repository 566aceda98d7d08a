package sink

import (
	"encoding/json"

	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

// RenderJSON exports the document's primitive tree as indented JSON.
// Every element carries a "type" field; image data is base64 encoded.
func RenderJSON(doc *scene.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
