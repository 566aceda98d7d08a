package scene

import "encoding/json"

// Kind identifies a primitive type in serialized documents.
type Kind string

const (
	KindRect   Kind = "rect"
	KindPath   Kind = "path"
	KindText   Kind = "text"
	KindCircle Kind = "circle"
	KindImage  Kind = "image"
)

// Element is a drawing primitive. The set is closed: only the types in
// this package implement it.
type Element interface {
	Kind() Kind
	element()
}

// Document is an immutable page of primitives.
type Document struct {
	width, height float64
	elements      []Element
}

// Width returns the page width in layout units.
func (d *Document) Width() float64 { return d.width }

// Height returns the page height in layout units.
func (d *Document) Height() float64 { return d.height }

// Len returns the number of primitives.
func (d *Document) Len() int { return len(d.elements) }

// Elements returns the primitives in drawing order. The slice is a copy.
func (d *Document) Elements() []Element {
	return append([]Element(nil), d.elements...)
}

// Count returns how many primitives of kind k the document holds.
func (d *Document) Count(k Kind) int {
	n := 0
	for _, el := range d.elements {
		if el.Kind() == k {
			n++
		}
	}
	return n
}

// Builder accumulates primitives for a new Document.
type Builder struct {
	width, height float64
	elements      []Element
}

// NewBuilder starts a document of the given page size.
func NewBuilder(width, height float64) *Builder {
	return &Builder{width: width, height: height}
}

// Add appends primitives in drawing order.
func (b *Builder) Add(els ...Element) *Builder {
	b.elements = append(b.elements, els...)
	return b
}

// Build returns the finished document. The builder may keep being used;
// later additions do not affect documents already built.
func (b *Builder) Build() *Document {
	return &Document{
		width:    b.width,
		height:   b.height,
		elements: append([]Element(nil), b.elements...),
	}
}

type documentJSON struct {
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Elements []json.RawMessage `json:"elements"`
}

// MarshalJSON encodes the document with a "type" field on every element.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Width:    d.width,
		Height:   d.height,
		Elements: make([]json.RawMessage, len(d.elements)),
	}
	for i, el := range d.elements {
		raw, err := marshalElement(el)
		if err != nil {
			return nil, err
		}
		out.Elements[i] = raw
	}
	return json.Marshal(out)
}

func marshalElement(el Element) ([]byte, error) {
	switch e := el.(type) {
	case Rect:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Rect
		}{e.Kind(), e})
	case Path:
		return json.Marshal(struct {
			Type Kind   `json:"type"`
			D    string `json:"d"`
			Path
		}{e.Kind(), e.D(), e})
	case Text:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Text
		}{e.Kind(), e})
	case Circle:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Circle
		}{e.Kind(), e})
	case Image:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Image
		}{e.Kind(), e})
	}
	return json.Marshal(struct {
		Type Kind `json:"type"`
	}{el.Kind()})
}
