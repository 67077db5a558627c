package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ravshan77/shikoyatlar-web/internal/format"
)

// Field length limits, mirroring what the server enforces.
const (
	minNameLength      = 2
	minComplaintLength = 10
	maxComplaintLength = 1000
)

// ValidationError lists the form fields that failed validation. It is
// produced before any network call: invalid forms never reach the API.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "pipeline: invalid form: " + strings.Join(parts, "; ")
}

// Validate checks the form against the field rules: name length, phone
// pattern, complaint text bounds and branch selection.
func Validate(f Form) error {
	fields := map[string]string{}

	if utf8.RuneCountInString(strings.TrimSpace(f.ClientName)) < minNameLength {
		fields["client_name"] = fmt.Sprintf("kamida %d ta belgi", minNameLength)
	}
	if !format.ValidPhone(f.ClientPhoneOne) {
		fields["client_phone_one"] = "telefon formati: " + format.PhonePrefix + "XX XXX XX XX"
	}
	if f.ClientPhoneTwo != "" && !format.ValidPhone(f.ClientPhoneTwo) {
		fields["client_phone_two"] = "telefon formati: " + format.PhonePrefix + "XX XXX XX XX"
	}
	textLen := utf8.RuneCountInString(strings.TrimSpace(f.ComplaintText))
	if textLen < minComplaintLength {
		fields["complaint_text"] = fmt.Sprintf("kamida %d ta belgi", minComplaintLength)
	} else if textLen > maxComplaintLength {
		fields["complaint_text"] = fmt.Sprintf("ko'pi bilan %d ta belgi", maxComplaintLength)
	}
	if f.BranchID <= 0 {
		fields["branch_id"] = "filial tanlanishi shart"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
