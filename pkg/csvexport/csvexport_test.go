package csvexport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/pkg/csvexport"
)

func TestWrite_CabeceraYFilas(t *testing.T) {
	out, err := csvexport.Write([]string{"Code", "Name"}, [][]string{
		{"EMP000001", "Doe, Jane"},
		{"EMP000002", `Bob "el jefe"`},
	})
	require.NoError(t, err)
	assert.Equal(t, "Code,Name\r\nEMP000001,\"Doe, Jane\"\r\nEMP000002,\"Bob \"\"el jefe\"\"\"\r\n", string(out))
}

func TestCell_NeutralizaFormulas(t *testing.T) {
	assert.Equal(t, "'=HYPERLINK(\"x\")", csvexport.Cell(`=HYPERLINK("x")`))
	assert.Equal(t, "'+57 300", csvexport.Cell("+57 300"))
	assert.Equal(t, "'@SUM(A1)", csvexport.Cell("@SUM(A1)"))
	assert.Equal(t, "ventas@globex.com", csvexport.Cell("ventas@globex.com"))
	assert.Equal(t, "", csvexport.Cell(""))
}
