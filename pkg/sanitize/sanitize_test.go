package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/pkg/sanitize"
)

func TestText_QuitaHTML(t *testing.T) {
	assert.Equal(t, "Hola mundo", sanitize.Text("  <b>Hola</b> <script>alert(1)</script>mundo "))
}

func TestRichText_ConservaFormatoSeguro(t *testing.T) {
	out := sanitize.RichText(`<p onclick="x()">Pago <strong>pendiente</strong></p><script>alert(1)</script>`)
	assert.Contains(t, out, "<strong>pendiente</strong>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}
