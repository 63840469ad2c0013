package templates

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount renders n with thousands separators, e.g. "1,204".
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// MemberLabel renders a member count as citizens of a planet.
func MemberLabel(n int) string {
	if n == 1 {
		return "1 Citizen"
	}
	return FormatCount(n) + " Citizens"
}
