package entity

import (
	"crypto/rand"
	"math/big"
)

// Prefijos de los códigos legibles de cada entidad.
const (
	PrefixEmployee    = "EMP"
	PrefixJob         = "JOB"
	PrefixApplication = "APP"
	PrefixCustomer    = "CUS"
	PrefixLead        = "LED"
	PrefixTicket      = "TKT"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeLength caracteres aleatorios después del prefijo.
const codeLength = 6

// NewCode genera un código legible: prefijo + 6 caracteres de A-Z0-9 (ej. EMP4K2Z9Q).
// La unicidad por empresa la garantiza la restricción única de la tabla.
func NewCode(prefix string) string {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = codeAlphabet[0]
			continue
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return prefix + string(b)
}
