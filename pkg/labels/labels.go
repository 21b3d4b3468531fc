// Package labels convierte los códigos de estado (snake_case) en etiquetas legibles
// para el dashboard, el PDF y los correos.
package labels

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var overrides = map[string]string{
	"new":         "Initial Contact",
	"qualified":   "Qualification",
	"won":         "Closed Won",
	"lost":        "Closed Lost",
	"hr_manager":  "HR Manager",
	"in_progress": "In Progress",
}

// Humanize "in_progress" → "In Progress", "full_time" → "Full Time".
func Humanize(code string) string {
	if l, ok := overrides[code]; ok {
		return l
	}
	caser := cases.Title(language.English)
	parts := strings.FieldsFunc(code, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = caser.String(strings.ToLower(p))
	}
	return strings.Join(parts, " ")
}

// Name nombre propio con mayúscula inicial en cada palabra ("jane  DOE" → "Jane Doe").
func Name(s string) string {
	caser := cases.Title(language.Spanish)
	return caser.String(strings.ToLower(strings.Join(strings.Fields(s), " ")))
}
