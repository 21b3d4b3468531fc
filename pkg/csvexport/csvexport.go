// Package csvexport arma los archivos CSV de las exportaciones de empleados y clientes.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Write serializa la cabecera y las filas con separador coma y fin de línea CRLF.
// Las celdas que una hoja de cálculo interpretaría como fórmula se prefijan con '.
func Write(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, row := range rows {
		safe := make([]string, len(row))
		for i, cell := range row {
			safe[i] = Cell(cell)
		}
		if err := w.Write(safe); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// Cell neutraliza =, +, -, @, tabulador y retorno al inicio de la celda.
func Cell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
