// Package fonts provides the font faces used by the native PNG and PDF sinks.
//
// SVG output names a CSS font stack and leaves font selection to the
// viewer. Rasterizing needs real font data, so the native sinks draw with
// Latin Modern Sans, which ships inside the binary via go-fonts.
package fonts

import (
	"fmt"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/tdewolff/canvas"
)

// FamilyName is the name registered for the embedded sans family.
const FamilyName = "Latin Modern Sans"

// SansRegularTTF returns the regular face data.
func SansRegularTTF() []byte { return lmsans10regular.TTF }

// SansBoldTTF returns the bold face data.
func SansBoldTTF() []byte { return lmsans10bold.TTF }

// NewSans loads a fresh font family with regular and bold faces.
// Families are not shared between goroutines, so each render builds its own.
func NewSans() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(FamilyName)
	if err := family.LoadFont(SansRegularTTF(), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular face: %w", err)
	}
	if err := family.LoadFont(SansBoldTTF(), 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("load bold face: %w", err)
	}
	return family, nil
}
