// Package schemas registers the entity schemas for the bulk import
// pipeline. Each entity's quirks live here as row rules attached to its
// schema rather than duplicated control flow in the pipeline.
package schemas

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andesmarket/bulkimport/internal/core"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// bcryptPrefixes identify already-encrypted passwords, which are accepted
// as-is (the original export format ships hashed credentials).
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// emailFormat validates the named field as an email address. Presence is
// handled by the field's Required flag; only non-empty values are checked.
func emailFormat(field string) core.RowRule {
	return func(cells []string, headers core.HeaderMap, rowNum int) []string {
		v := core.CellValue(cells, headers, field)
		if v == "" || emailRegex.MatchString(v) {
			return nil
		}
		return []string{fmt.Sprintf("row %d: email '%s' is not valid", rowNum, v)}
	}
}

// oneOf validates the named field against an allowed value set,
// case-insensitively.
func oneOf(field string, allowed ...string) core.RowRule {
	return func(cells []string, headers core.HeaderMap, rowNum int) []string {
		v := core.CellValue(cells, headers, field)
		if v == "" {
			return nil
		}
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return nil
			}
		}
		return []string{fmt.Sprintf("row %d: %s '%s' is not valid (must be one of %s)",
			rowNum, field, strings.ToUpper(v), strings.Join(allowed, ", "))}
	}
}

// passwordPolicy validates the named field against the password policy:
// at least 8 characters, one uppercase letter, one lowercase letter, one
// digit and one special character. When allowEncrypted is true, values that
// look like a bcrypt hash skip the policy entirely.
func passwordPolicy(field string, allowEncrypted bool) core.RowRule {
	return func(cells []string, headers core.HeaderMap, rowNum int) []string {
		v := core.CellValue(cells, headers, field)
		if v == "" {
			return nil
		}
		if allowEncrypted && isEncrypted(v) {
			return nil
		}

		var problems []string
		if len(v) < 8 {
			problems = append(problems, "at least 8 characters")
		}
		if !strings.ContainsAny(v, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			problems = append(problems, "an uppercase letter")
		}
		if !strings.ContainsAny(v, "abcdefghijklmnopqrstuvwxyz") {
			problems = append(problems, "a lowercase letter")
		}
		if !strings.ContainsAny(v, "0123456789") {
			problems = append(problems, "a digit")
		}
		if !strings.ContainsAny(v, `!@#$%^&*()_+-=[]{}|;:,.<>?`) {
			problems = append(problems, "a special character")
		}

		if len(problems) == 0 {
			return nil
		}
		return []string{fmt.Sprintf("row %d: %s must contain %s",
			rowNum, field, strings.Join(problems, ", "))}
	}
}

func isEncrypted(v string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}
