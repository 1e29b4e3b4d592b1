// Package validate wraps go-playground/validator for the handful of string
// shapes services check by hand: emails, web URLs and DOIs.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	v = newValidator()

	doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("doi", func(fl validator.FieldLevel) bool {
		return doiPattern.MatchString(fl.Field().String())
	})
	return val
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}

// HTTPURL reports whether s is an absolute http or https URL.
func HTTPURL(s string) bool {
	if v.Var(s, "required,url") != nil {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DOI reports whether s looks like a bare DOI such as 10.1000/xyz123.
func DOI(s string) bool {
	return v.Var(s, "required,doi") == nil
}

// CleanDOI strips resolver prefixes and whitespace from a user-supplied DOI.
func CleanDOI(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(s)
}
