package partnerwindow

import "strings"

// stripBracketed removes any "[...]" markup from s, such as caregiver
// annotations the text source embeds inline, leaving only the text
// that belongs on the panel.
func stripBracketed(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
