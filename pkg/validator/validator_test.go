package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/pkg/validator"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"first_name" validate:"notblank,max=10"`
	Role     string `json:"role" validate:"omitempty,oneof=admin employee"`
	HireDate string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validator.Struct(sample{Email: "a@b.co", Name: "Jane", HireDate: "2026-01-15"}))
}

func TestStruct_CamposConNombreJSON(t *testing.T) {
	err := validator.Struct(sample{Email: "no-email", Name: "   ", Role: "root", HireDate: "15/01/2026"})
	require.Error(t, err)

	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "email debe ser un email válido", fields["email"])
	assert.Equal(t, "first_name es obligatorio", fields["first_name"])
	assert.Equal(t, "role debe ser uno de [admin employee]", fields["role"])
	assert.Contains(t, fields["hire_date"], "2006-01-02")
	assert.Contains(t, err.Error(), "; ")
}
