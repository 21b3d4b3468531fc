// Package sanitize limpia texto libre (descripciones, respuestas de tickets, cartas)
// antes de persistirlo.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text quita todo el HTML; para campos cortos (nombres, asuntos).
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// RichText conserva el formato básico seguro (negritas, listas, enlaces) y elimina scripts y atributos peligrosos.
func RichText(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
