// Package filter narrows snapshots to the courses a user watches.
package filter

import (
	"strings"

	"github.com/aleister1102/seatwatch/internal/models"
)

// Mode tells which list a Rule matches against.
type Mode string

const (
	ModeAll      Mode = "all"
	ModeCodes    Mode = "codes"
	ModePrefixes Mode = "prefixes"
)

// Rule is an allow-list of exact course codes or code prefixes. A non-empty
// code list takes priority and the prefixes are then ignored.
type Rule struct {
	codes    map[string]struct{}
	prefixes []string
}

// NewRule builds a rule. Entries are trimmed and upper-cased; blanks are dropped.
func NewRule(codes, prefixes []string) Rule {
	rule := Rule{}
	for _, code := range codes {
		code = normalize(code)
		if code == "" {
			continue
		}
		if rule.codes == nil {
			rule.codes = make(map[string]struct{})
		}
		rule.codes[code] = struct{}{}
	}
	for _, prefix := range prefixes {
		if prefix = normalize(prefix); prefix != "" {
			rule.prefixes = append(rule.prefixes, prefix)
		}
	}
	return rule
}

// Mode reports which list is in effect.
func (r Rule) Mode() Mode {
	switch {
	case len(r.codes) > 0:
		return ModeCodes
	case len(r.prefixes) > 0:
		return ModePrefixes
	default:
		return ModeAll
	}
}

// Allows reports whether code is in scope.
func (r Rule) Allows(code string) bool {
	switch r.Mode() {
	case ModeCodes:
		_, ok := r.codes[code]
		return ok
	case ModePrefixes:
		for _, prefix := range r.prefixes {
			if strings.HasPrefix(code, prefix) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Apply returns a new snapshot holding the allowed records in their original order.
func (r Rule) Apply(snapshot *models.Snapshot) *models.Snapshot {
	filtered := models.NewSnapshot()
	for _, record := range snapshot.Records() {
		if r.Allows(record.Code) {
			filtered.Set(record)
		}
	}
	return filtered
}

func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
