package utils

import (
	"clinica-service/internal/pkg/constvars"
	"strings"
	"unicode"
)

// GetInitials returns up to two upper-cased initials: the first letter of the
// first and of the last word of name.
func GetInitials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	initials := []rune{firstRune(words[0])}
	if len(words) > 1 {
		initials = append(initials, firstRune(words[len(words)-1]))
	}
	return strings.ToUpper(string(initials))
}

func FormatRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return constvars.RoleLabelUnknown
	}
	if label, ok := constvars.RoleLabels[role]; ok {
		return label
	}
	return humanize(role)
}

func FormatFullName(firstName, lastName string) string {
	return strings.Join(strings.Fields(firstName+" "+lastName), " ")
}

func firstRune(word string) rune {
	for _, r := range word {
		return r
	}
	return 0
}

// humanize turns "no_interesado" into "No interesado".
func humanize(input string) string {
	input = strings.TrimSpace(strings.ReplaceAll(input, "_", " "))
	if input == "" {
		return input
	}
	runes := []rune(strings.ToLower(input))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
