package layout

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	floatPrefix   = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
	decimalNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)
	radixNumber   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// parseFloatPrefix reads the longest numeric prefix of s after leading
// whitespace, returning NaN when there is none. "12.5px" gives 12.5.
func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return math.NaN()
	}
	return toFloat(m)
}

// parseNumber converts a whole token: surrounding whitespace is ignored, an
// empty token is 0 and anything that is not entirely a number is NaN.
// Unsigned 0x, 0o and 0b literals are read in their base.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if radixNumber.MatchString(s) {
		return radixToFloat(s)
	}
	if !decimalNumber.MatchString(s) {
		return math.NaN()
	}
	return toFloat(s)
}

func toFloat(s string) float64 {
	switch strings.TrimLeft(s, "+-") {
	case "Infinity":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// out of range values come back as ±Inf or 0 along with the error
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func radixToFloat(s string) float64 {
	base := 16
	switch s[1] {
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	}
	n, ok := new(big.Int).SetString(s[2:], base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

func isNumeric(f float64) bool {
	return !math.IsNaN(f)
}
