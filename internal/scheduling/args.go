package scheduling

import (
	"strings"

	"github.com/spf13/cast"
)

// Args is the loosely-typed argument object a voice platform sends.
type Args map[string]any

// Accepted key names per logical field, in lookup order.
var (
	DateKeys  = []string{"requested_date", "date"}
	TimeKeys  = []string{"requested_time", "time"}
	NameKeys  = []string{"name", "patient_name", "patientName", "customer_name"}
	PhoneKeys = []string{"phone", "phone_number", "phoneNumber"}
	IssueKeys = []string{"issue", "reason", "issue_description", "description", "symptoms"}
)

// First returns the first key whose value is present and not blank,
// trimmed. Numbers and bools are stringified; objects and arrays are skipped.
func (a Args) First(keys ...string) string {
	return strings.TrimSpace(a.firstRaw(keys...))
}

// firstRaw is First without the trimming, for echoing input back verbatim.
func (a Args) firstRaw(keys ...string) string {
	for _, k := range keys {
		v, ok := a[k]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (a Args) firstOr(fallback string, keys ...string) string {
	if s := a.First(keys...); s != "" {
		return s
	}
	return fallback
}
