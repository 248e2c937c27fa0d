// Package core holds small value types shared across the cooked asset
// model (colors) that would otherwise be duplicated per package.
package core

// Color is a linear RGBA color, used for material base/emissive/ambient
// fields and anywhere else a cooked asset stores a 4-float color.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)
