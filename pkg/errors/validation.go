package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateConfigName validates a configuration name.
// The name becomes part of output filenames and the declared module name,
// so it is restricted to a conservative character set:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateConfigName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "configuration name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "configuration name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "configuration name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidConfig, "configuration name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// cssIdentRegex matches the characters allowed in a class prefix.
var cssIdentRegex = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

// ValidateClassPrefix validates a CSS class prefix. An empty prefix is allowed.
func ValidateClassPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !cssIdentRegex.MatchString(prefix) {
		return New(ErrCodeInvalidConfig, "invalid css class prefix: %q", prefix)
	}
	return nil
}

// ValidateSelector validates a stylesheet selector used for a base rule.
// Selectors are emitted verbatim, so braces and semicolons are rejected.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return New(ErrCodeInvalidConfig, "css selector cannot be empty")
	}
	if strings.ContainsAny(selector, "{};") {
		return New(ErrCodeInvalidConfig, "css selector contains invalid characters: %q", selector)
	}
	return nil
}

// jsIdentRegex matches identifiers usable as exported declaration names.
var jsIdentRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidateTypeName validates an enum or union type name.
func ValidateTypeName(name string) error {
	if !jsIdentRegex.MatchString(name) {
		return New(ErrCodeInvalidConfig, "invalid type name: %q", name)
	}
	return nil
}
