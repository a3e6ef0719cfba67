package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	digitsRegex = regexp.MustCompile(`^\d+$`)
	numberRegex = regexp.MustCompile(`^-?(?:\d+|\d{1,3}(?:,\d{3})+)(?:\.\d+)?$`)
)

type matchFunc func(string) bool

// namedFormats are the format expectations resolvable by name. Anything
// else is compiled as a raw pattern.
var namedFormats = map[string]matchFunc{
	"digits": digitsRegex.MatchString,
	"number": numberRegex.MatchString,
	"email":  matchEmail,
	"url":    matchURL,
	"uuid":   matchUUID,
}

// matcherFor resolves a format expectation: a named format, a raw
// pattern string, or a pre-compiled *regexp.Regexp. A name missing from
// the named set falls back to being compiled as a pattern.
func matcherFor(expectation any) (matchFunc, error) {
	switch exp := expectation.(type) {
	case *regexp.Regexp:
		return exp.MatchString, nil
	case string:
		if match, ok := namedFormats[exp]; ok {
			return match, nil
		}
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, fmt.Errorf("format: pattern %q: %w", exp, err)
		}
		return re.MatchString, nil
	default:
		return nil, fmt.Errorf("format: expectation must be a format name or pattern, got %T", expectation)
	}
}

func matchEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// mail.ParseAddress accepts domains without a dot; web-facing
	// validation expects at least one non-empty label on each side.
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}

func matchURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func matchUUID(value string) bool {
	// Fast rejection before parsing: canonical form only.
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
