package graph

import "strings"

// DashCase inserts a hyphen between an ASCII letter and a following
// uppercase letter, then lowercases the result: "GuestTutorial" becomes
// "guest-tutorial".
func DashCase(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 4)
	for i := 0; i < len(value); i++ {
		c := value[i]
		b.WriteByte(c)
		if i+1 < len(value) && isASCIILetter(c) && isASCIIUpper(value[i+1]) {
			b.WriteByte('-')
		}
	}
	return strings.ToLower(b.String())
}

func isASCIILetter(c byte) bool {
	return isASCIIUpper(c) || (c >= 'a' && c <= 'z')
}

func isASCIIUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
