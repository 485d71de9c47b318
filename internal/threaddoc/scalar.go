package threaddoc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericLiteral matches plain decimal literals such as "2", "-0.05", ".5" or "1e-3".
var numericLiteral = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// Scalar is the text value of a leaf element. Numeric literals are decoded as
// numbers while the original literal is kept, so values that are never
// recomputed render exactly as they were read.
type Scalar struct {
	raw   string
	num   float64
	isNum bool
}

// ParseScalar decodes leaf text, recognising numeric literals.
func ParseScalar(text string) Scalar {
	trimmed := strings.TrimSpace(text)
	if numericLiteral.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Scalar{raw: trimmed, num: v, isNum: true}
		}
	}
	return Scalar{raw: text}
}

// Number returns a numeric scalar rendered with FormatNumber.
func Number(v float64) Scalar {
	return Scalar{raw: FormatNumber(v), num: v, isNum: true}
}

// Text returns a string scalar.
func Text(s string) Scalar {
	return Scalar{raw: s}
}

// IsNumber reports whether the scalar was decoded as a number.
func (s Scalar) IsNumber() bool { return s.isNum }

// Float returns the numeric value and whether the scalar is numeric.
func (s Scalar) Float() (float64, bool) { return s.num, s.isNum }

// String returns the textual form of the scalar.
func (s Scalar) String() string { return s.raw }

// Add returns the scalar shifted by delta. Plain float64 addition, no rounding.
// Non-numeric scalars are returned unchanged with ok=false.
func (s Scalar) Add(delta float64) (Scalar, bool) {
	if !s.isNum {
		return s, false
	}
	return Number(s.num + delta), true
}

// Equal reports whether two scalars have the same value. Numbers compare by
// value, everything else by text.
func (s Scalar) Equal(o Scalar) bool {
	if s.isNum && o.isNum {
		return s.num == o.num
	}
	return s.isNum == o.isNum && s.raw == o.raw
}

// FormatNumber renders v with the shortest decimal representation that
// round-trips, switching to exponent notation only for very large or very
// small magnitudes.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSigned renders v with an explicit leading sign ("+0.05", "-0.05", "+0").
func FormatSigned(v float64) string {
	if v < 0 {
		return "-" + FormatNumber(-v)
	}
	return "+" + FormatNumber(math.Abs(v))
}
