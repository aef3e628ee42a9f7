package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Subject code pattern - uppercase alphanumeric
	SubjectCodePattern = `^[A-Z0-9]+$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email       *regexp.Regexp
	SubjectCode *regexp.Regexp
}{
	Email:       regexp.MustCompile(EmailPattern),
	SubjectCode: regexp.MustCompile(SubjectCodePattern),
}
