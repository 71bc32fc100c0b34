package graph

import (
	"math"
	"strings"
	"unicode"
)

// TimestampSeconds converts a colon separated timestamp into seconds. The
// rightmost segment counts 60^0, the next 60^1, and so on without limit, so
// "1:00:00:00" is 60^3 seconds.
//
// Each segment is read like a lenient integer parse: leading whitespace and
// an optional sign, then as many decimal digits as are present. Anything
// after the digits is ignored. A segment without leading digits yields NaN,
// and NaN propagates to the total.
func TimestampSeconds(value string) float64 {
	segments := strings.Split(value, ":")
	total := 0.0
	for i, segment := range segments {
		n := parseLeadingInt(segment)
		if math.IsNaN(n) {
			return math.NaN()
		}
		total += n * math.Pow(60, float64(len(segments)-1-i))
	}
	return total
}

func parseLeadingInt(segment string) float64 {
	s := strings.TrimLeftFunc(segment, unicode.IsSpace)
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	digits := 0
	value := 0.0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		value = value*10 + float64(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return math.NaN()
	}
	return sign * value
}
