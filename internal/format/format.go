// Package format holds display helpers shared by the CLI and the web
// dashboard: Uzbek phone formatting, status labels and the windowed
// page-number sequence for pagination controls.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// PhonePrefix is the fixed country prefix for client phone numbers.
const PhonePrefix = "+998 "

// Gap marks an elided run of pages in a page-number sequence.
const Gap = "..."

var (
	nonDigits    = regexp.MustCompile(`\D`)
	phonePattern = regexp.MustCompile(`^\+998 \d{2} \d{3} \d{2} \d{2}$`)
)

// Phone normalizes raw input into the canonical "+998 XX XXX XX XX"
// form. The country code may be present or omitted in the input; partial
// input yields a partially formatted number, empty input just the prefix.
func Phone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if strings.HasPrefix(digits, "998") {
		digits = digits[3:]
	}
	if digits == "" {
		return PhonePrefix
	}
	if len(digits) > 9 {
		digits = digits[:9]
	}

	var parts []string
	for _, n := range []int{2, 3, 2, 2} {
		if digits == "" {
			break
		}
		if len(digits) < n {
			n = len(digits)
		}
		parts = append(parts, digits[:n])
		digits = digits[n:]
	}
	return PhonePrefix + strings.Join(parts, " ")
}

// ValidPhone reports whether s is a fully formatted phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// PageWindow computes the page-number sequence shown in pagination
// controls: page 1 and the last page are always present, plus two pages
// either side of the current one, with Gap markers where the window does
// not reach an edge. Returns nil when there is a single page or less.
func PageWindow(current, last int) []string {
	if last <= 1 {
		return nil
	}

	const delta = 2
	start := current - delta
	if start < 1 {
		start = 1
	}
	end := current + delta
	if end > last {
		end = last
	}

	var pages []string
	if start > 1 {
		pages = append(pages, "1")
		if start > 2 {
			pages = append(pages, Gap)
		}
	}
	for p := start; p <= end; p++ {
		pages = append(pages, strconv.Itoa(p))
	}
	if end < last {
		if end < last-1 {
			pages = append(pages, Gap)
		}
		pages = append(pages, strconv.Itoa(last))
	}
	return pages
}

// StatusLabel returns the Uzbek display label for a complaint status.
func StatusLabel(status string) string {
	switch status {
	case models.StatusInProgress:
		return "Jarayonda"
	case models.StatusCompleted:
		return "Yakunlangan"
	default:
		return "Noma'lum"
	}
}

// Truncate shortens text to at most max runes, appending "..." when
// anything was cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
