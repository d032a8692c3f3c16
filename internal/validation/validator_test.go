package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Month    int    `json:"month" validate:"min=1,max=12"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(signup{Name: "Ana", Email: "ana@fenix.net", Password: "secret", Month: 3}))

	err := v.Validate(signup{Email: "nope", Password: "abc", Month: 13})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"email":    "must be a valid email address",
		"password": "must be at least 6 characters",
		"month":    "must be at most 12",
	}, fe.Fields)
	assert.Equal(t,
		"validation failed: email must be a valid email address; month must be at most 12; name is required; password must be at least 6 characters",
		err.Error())
}
