package circuit

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches one rotation angle inside a QASM gate line.
// Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "-2*pi/3", "3.14e-2"
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex splits a pi expression into sign, coefficient and denominator.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// piFractions are the angles FormatAngle writes symbolically.
var piFractions = []struct {
	num, den int
	text     string
}{
	{2, 1, "2*pi"},
	{1, 1, "pi"},
	{1, 2, "pi/2"},
	{1, 3, "pi/3"},
	{1, 4, "pi/4"},
	{1, 6, "pi/6"},
	{1, 8, "pi/8"},
	{3, 4, "3*pi/4"},
	{3, 2, "3*pi/2"},
	{2, 3, "2*pi/3"},
}

// ParseAngle reads a decimal number or a pi expression such as "pi",
// "3*pi/4", "2pi" or "-pi/2".
func ParseAngle(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}

	m := piExprRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	coeff, den := 1.0, 1.0
	var err error
	if m[2] != "" {
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, false
		}
	}
	if m[3] != "" {
		if den, err = strconv.ParseFloat(m[3], 64); err != nil || den == 0 {
			return 0, false
		}
	}
	v := coeff * math.Pi / den
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// FormatAngle writes common pi fractions symbolically and anything else as
// the shortest decimal ParseAngle reads back to the same float64.
func FormatAngle(v float64) string {
	for _, f := range piFractions {
		exact := float64(f.num) * math.Pi / float64(f.den)
		switch v {
		case exact:
			return f.text
		case -exact:
			return "-" + f.text
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
