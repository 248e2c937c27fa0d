package codec

import (
	"io"

	"vasset/core"
	vmath "vasset/math"
)

func writeVec2(w io.Writer, v vmath.Vec2) error {
	if err := writeF32(w, v.X); err != nil {
		return err
	}
	return writeF32(w, v.Y)
}

func readVec2(r io.Reader, path string) (vmath.Vec2, error) {
	var v vmath.Vec2
	var err error
	if v.X, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.Y, err = readF32(r, path); err != nil {
		return v, err
	}
	return v, nil
}

func writeVec3(w io.Writer, v vmath.Vec3) error {
	for _, f := range []float32{v.X, v.Y, v.Z} {
		if err := writeF32(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readVec3(r io.Reader, path string) (vmath.Vec3, error) {
	var v vmath.Vec3
	var err error
	if v.X, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.Y, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.Z, err = readF32(r, path); err != nil {
		return v, err
	}
	return v, nil
}

func writeVec4(w io.Writer, v vmath.Vec4) error {
	for _, f := range []float32{v.X, v.Y, v.Z, v.W} {
		if err := writeF32(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readVec4(r io.Reader, path string) (vmath.Vec4, error) {
	var v vmath.Vec4
	var err error
	if v.X, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.Y, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.Z, err = readF32(r, path); err != nil {
		return v, err
	}
	if v.W, err = readF32(r, path); err != nil {
		return v, err
	}
	return v, nil
}

// writeVertexColor writes a core.Color as the 4 interleaved floats the
// VMESH vertex-color attribute uses.
func writeVertexColor(w io.Writer, c core.Color) error { return writeColor(w, c) }

func readVertexColor(r io.Reader, path string) (core.Color, error) { return readColor(r, path) }
