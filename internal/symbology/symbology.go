// Package symbology defines the barcode symbologies the scanner knows about
// and helpers for the fully-populated symbology-keyed maps used by settings.
package symbology

import (
	"fmt"
	"strings"
)

// Symbology represents a specific barcode encoding standard.
type Symbology int

const (
	Code128 Symbology = iota
	Code39
	Code93
	EAN8
	EAN13
	UPCA
	UPCE
	ITF
	Codabar
	QRCode
	DataMatrix
	Aztec
	PDF417
)

// All returns every known symbology in stable declaration order.
func All() []Symbology {
	return []Symbology{
		Code128, Code39, Code93, EAN8, EAN13, UPCA, UPCE, ITF, Codabar,
		QRCode, DataMatrix, Aztec, PDF417,
	}
}

// String returns the display name of the symbology.
func (s Symbology) String() string {
	switch s {
	case Code128:
		return "Code128"
	case Code39:
		return "Code39"
	case Code93:
		return "Code93"
	case EAN8:
		return "EAN8"
	case EAN13:
		return "EAN13"
	case UPCA:
		return "UPCA"
	case UPCE:
		return "UPCE"
	case ITF:
		return "ITF"
	case Codabar:
		return "Codabar"
	case QRCode:
		return "QR"
	case DataMatrix:
		return "DataMatrix"
	case Aztec:
		return "Aztec"
	case PDF417:
		return "PDF417"
	default:
		return "Unknown"
	}
}

// Is2D reports whether the symbology encodes a two-dimensional matrix symbol.
func (s Symbology) Is2D() bool {
	switch s {
	case QRCode, DataMatrix, Aztec, PDF417:
		return true
	default:
		return false
	}
}

// IsNumericCheckDigit reports whether the symbology carries a trailing
// numeric check digit (GTIN family).
func (s Symbology) IsNumericCheckDigit() bool {
	switch s {
	case EAN8, EAN13, UPCA:
		return true
	default:
		return false
	}
}

// Parse converts a case-insensitive display name into a Symbology.
func Parse(name string) (Symbology, error) {
	n := strings.TrimSpace(name)
	for _, s := range All() {
		if strings.EqualFold(s.String(), n) {
			return s, nil
		}
	}
	if strings.EqualFold(n, "qrcode") || strings.EqualFold(n, "qr-code") {
		return QRCode, nil
	}
	return 0, fmt.Errorf("unknown symbology %q", name)
}

// Set is a symbology-keyed boolean map that must contain an explicit entry
// for every known symbology. A missing entry is an error state rather than
// an implicit false.
type Set map[Symbology]bool

// NewSet returns a Set with every known symbology explicitly set to false.
func NewSet() Set {
	s := make(Set, len(All()))
	for _, sym := range All() {
		s[sym] = false
	}
	return s
}

// Validate confirms every known symbology has an explicit entry.
func (s Set) Validate() error {
	for _, sym := range All() {
		if _, ok := s[sym]; !ok {
			return fmt.Errorf("symbology set missing entry for %s", sym)
		}
	}
	return nil
}

// Enabled returns the symbologies mapped to true, in declaration order.
func (s Set) Enabled() []Symbology {
	var out []Symbology
	for _, sym := range All() {
		if s[sym] {
			out = append(out, sym)
		}
	}
	return out
}

// Any reports whether at least one symbology is mapped to true.
func (s Set) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Intersect returns the symbologies present in both slices, preserving the
// declaration order of All().
func Intersect(a, b []Symbology) []Symbology {
	inA := make(map[Symbology]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	inB := make(map[Symbology]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []Symbology
	for _, s := range All() {
		if inA[s] && inB[s] {
			out = append(out, s)
		}
	}
	return out
}
