package customvalidator

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestSlugValidation(t *testing.T) {
	v := newValidator(t)

	valid := []string{"books", "sci-fi", "top_10", "a", "ABC-123"}
	for _, s := range valid {
		assert.NoError(t, v.Var(s, "slug"), "slug %q должен быть валидным", s)
	}

	invalid := []string{"", "с кириллицей", "with space", "semi;colon", "pct%20"}
	for _, s := range invalid {
		assert.Error(t, v.Var(s, "slug"), "slug %q должен быть отклонён", s)
	}
}

func TestPublicationYearValidation(t *testing.T) {
	v := newValidator(t)
	currentYear := time.Now().Year()

	assert.NoError(t, v.Var(1965, "pub_year"))
	assert.NoError(t, v.Var(currentYear, "pub_year"))
	assert.NoError(t, v.Var(currentYear+2, "pub_year"))

	assert.Error(t, v.Var(0, "pub_year"))
	assert.Error(t, v.Var(-100, "pub_year"))
	assert.Error(t, v.Var(currentYear+3, "pub_year"))
}

func TestRoleNameValidation(t *testing.T) {
	v := newValidator(t)

	for _, role := range []string{"user", "moderator", "admin"} {
		assert.NoError(t, v.Var(role, "role_name"))
	}

	for _, role := range []string{"", "superuser", "Admin", "root"} {
		assert.Error(t, v.Var(role, "role_name"))
	}
}
