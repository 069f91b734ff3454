package leads

import (
	"regexp"
	"strings"
)

// Detection patterns, compiled once. The rules are deliberately narrow:
// a name needs an explicit cue phrase, a phone is ten digits with an
// optional +91 prefix, an email is local@domain with a 2+ letter TLD.
var (
	namePattern  = regexp.MustCompile(`(?i:name is|i'm|i am)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	phonePattern = regexp.MustCompile(`(?:\+91[\s-]?)?\d{10}`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Extract scans free-form text for contact details. Fields with no match
// stay empty; on multiple matches the first wins. Pure function of the
// input string.
func Extract(text string) ContactInfo {
	var contact ContactInfo
	if m := namePattern.FindStringSubmatch(text); len(m) > 1 {
		contact.Name = strings.TrimSpace(m[1])
	}
	contact.Phone = phonePattern.FindString(text)
	contact.Email = emailPattern.FindString(text)
	return contact
}
