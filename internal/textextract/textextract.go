// Package textextract recovers case metadata from the unstructured text blocks
// of historical repair records.
package textextract

import (
	"regexp"
	"strings"
)

var (
	// customerPattern matches the text on one line that precedes the honorific 様.
	customerPattern = regexp.MustCompile(`([^\n]+?)\s*様`)
	// datePattern matches dotted dates such as 2023.4.1 or 2023.04.01.
	datePattern = regexp.MustCompile(`\d{4}\.\d{1,2}\.\d{1,2}`)
	// serialPattern matches "Serial: <rest of line>", case-insensitively.
	serialPattern = regexp.MustCompile(`(?i)Serial:\s*([^\n]+)`)
)

// CustomerName returns the customer name addressed with 様 in text.
func CustomerName(text string) (string, bool) {
	m := customerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// Date returns the first YYYY.M.D token in text.
func Date(text string) (string, bool) {
	d := datePattern.FindString(text)
	return d, d != ""
}

// SerialNumber returns the value of the first "Serial:" line in text.
func SerialNumber(text string) (string, bool) {
	m := serialPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	serial := strings.TrimSpace(m[1])
	return serial, serial != ""
}
