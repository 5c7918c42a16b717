package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxNotesLength = 2000

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	categoryRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,63}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func ValidateNamePart(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' {
			return false
		}
	}

	return true
}

func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		subparts := strings.Split(part, "-")
		for j, subpart := range subparts {
			runes := []rune(strings.ToLower(subpart))
			if len(runes) > 0 {
				runes[0] = unicode.ToUpper(runes[0])
			}
			subparts[j] = string(runes)
		}
		parts[i] = strings.Join(subparts, "-")
	}

	return strings.Join(parts, " ")
}

// ValidateCategory accepts time-tracking category keys such as "dev" or "client-calls".
func ValidateCategory(category string) bool {
	return categoryRegex.MatchString(category)
}

// CleanNotes strips markup characters and trims free text to MaxNotesLength runes.
func CleanNotes(notes string) string {
	cleaned := strings.TrimSpace(SanitizeString(notes))
	if utf8.RuneCountInString(cleaned) > MaxNotesLength {
		cleaned = string([]rune(cleaned)[:MaxNotesLength])
	}
	return cleaned
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
