// Package id implements the 128-bit stable asset identity: a path- or
// name-derived hash for deterministic keys, plus a uniformly random
// form for cases with no natural path.
//
// Path/name hashing uses XXH3-128 via github.com/zeebo/xxh3. Random
// ids are generated with github.com/google/uuid rather than
// hand-rolled OS entropy plumbing.
package id

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// Id is a 128-bit stable asset identity. The zero value is nil.
type Id [16]byte

// Nil is the all-zero identity.
var Nil = Id{}

// Random returns a uniformly distributed identity.
func Random() Id {
	var id Id
	u := uuid.New()
	copy(id[:], u[:])
	return id
}

// FromPath derives a deterministic identity from a path string: the
// path is lower-cased and has every '\' replaced with '/' before
// hashing, so two spellings of the same path always collide.
func FromPath(p string) Id {
	return hashBytes([]byte(normalizePath(p)))
}

// FromName derives a deterministic identity from an opaque name
// (material names, generated asset names) with no path normalization.
func FromName(n string) Id {
	return hashBytes([]byte(n))
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.ToLower(p)
}

func hashBytes(b []byte) Id {
	h := xxh3.Hash128(b)
	var id Id
	// xxh3.Uint128 exposes Hi/Lo; store big-endian-consistent bytes so
	// the textual form is stable regardless of host endianness.
	for i := 0; i < 8; i++ {
		id[i] = byte(h.Hi >> (8 * (7 - i)))
		id[8+i] = byte(h.Lo >> (8 * (7 - i)))
	}
	return id
}

// IsNil reports whether id is the all-zero identity.
func (id Id) IsNil() bool {
	return id == Nil
}

// Compare returns -1, 0, or 1 comparing id to other byte-wise.
func (id Id) Compare(other Id) int {
	for i := range id {
		if id[i] != other[i] {
			if id[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports id < other under byte-wise ordering.
func (id Id) Less(other Id) bool { return id.Compare(other) < 0 }

// String renders the canonical 8-4-4-4-12 lower-case hex form.
func (id Id) String() string {
	h := hex.EncodeToString(id[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}

// ParseError is returned by Parse when s is not a valid canonical or
// bare-hex identity string.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("id: invalid identity string %q", e.Input)
}

// Parse is liberal about separators (hyphens may appear anywhere or
// nowhere) but strict about there being exactly 32 hex digits.
func Parse(s string) (Id, error) {
	var hexDigits strings.Builder
	hexDigits.Grow(32)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			hexDigits.WriteRune(r)
		case r == '-':
			continue
		default:
			return Nil, &ParseError{Input: s}
		}
	}
	digits := hexDigits.String()
	if len(digits) != 32 {
		return Nil, &ParseError{Input: s}
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return Nil, &ParseError{Input: s}
	}
	var out Id
	copy(out[:], raw)
	return out, nil
}
