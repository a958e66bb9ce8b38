package calcinput

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseLeadingInt reads the longest signed decimal integer at the start of raw,
// ignoring leading whitespace and any trailing garbage ("12abc" -> 12, "3.7" -> 3).
// ok is false when no digits are found.
func ParseLeadingInt(raw string) (value int, ok bool) {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseLeadingFloat reads the longest decimal number at the start of raw
// ("40%" -> 40, "1.5e2x" -> 150, "Infinity" -> +Inf). It returns NaN when no
// number is found.
func ParseLeadingFloat(raw string) float64 {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	mantissa := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return math.NaN()
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		digits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > digits {
			end = exp
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if errors.Is(err, strconv.ErrRange) {
		// ParseFloat already returns the saturated value.
		return v
	}
	if err != nil {
		return math.NaN()
	}
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
