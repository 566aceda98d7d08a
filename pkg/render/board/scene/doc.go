// Package scene describes a rendered page as an ordered list of drawing
// primitives.
//
// A [Document] is produced once by the page composer and never changes
// afterwards. Sinks walk [Document.Elements] back to front and translate
// each primitive into their target format (SVG markup, a raster canvas,
// PDF operators, or JSON).
//
// The primitives are [Rect], [Path], [Text], [Circle] and [Image]. Text
// content is stored raw; escaping is the job of the markup sinks.
package scene
