package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/pkg/validator"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Note     string `json:"note" validate:"omitempty,max=5"`
}

func TestValidateStruct_Valido(t *testing.T) {
	assert.Nil(t, validator.ValidateStruct(sample{Email: "a@b.co", Password: "12345678"}))
}

func TestValidateStruct_UsaNombresJSON(t *testing.T) {
	errs := validator.ValidateStruct(sample{Email: "no-es-email", Password: "123"})
	require.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "email", errs[0].Tag)
	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "min", errs[1].Tag)
	assert.Equal(t, "8", errs[1].Param)
	assert.Equal(t, "email: email; password: min=8", validator.Message(errs))
}
