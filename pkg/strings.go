// Package pkg
package pkg

import "strings"

// ContainsAny reports whether the lower-cased s matches any of the patterns.
// A pattern ending in "*" matches as a prefix, anything else as a substring.
// Patterns are expected to be lower case already.
func ContainsAny(s string, patterns []string) bool {
	s = strings.ToLower(s)

	for _, p := range patterns {
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(s, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}

		if strings.Contains(s, p) {
			return true
		}
	}

	return false
}
