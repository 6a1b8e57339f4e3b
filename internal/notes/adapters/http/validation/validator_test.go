package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/validation"
	"gonotes/internal/notes/domain/apperr"
)

func newValidator() *validation.Validator {
	return validation.New(validation.Limits{MaxNameLength: 10, MinPasswordLength: 4})
}

func codesOf(t *testing.T, err error) map[string]string {
	t.Helper()

	list, ok := apperr.Collect(err)
	require.True(t, ok, "expected business errors, got %v", err)
	out := make(map[string]string, len(list))
	for _, e := range list {
		out[e.Field] = string(e.Code)
	}
	return out
}

func TestRegisterRequest(t *testing.T) {
	v := newValidator()

	t.Run("valid with cyrillic and hyphen", func(t *testing.T) {
		err := v.Struct(&dto.RegisterRequest{FirstName: "Анна-Мария", LastName: "Petrova", Login: "anna1", Password: "pass"})
		assert.NoError(t, err)
	})

	t.Run("length limits come from config", func(t *testing.T) {
		err := v.Struct(&dto.RegisterRequest{
			FirstName: strings.Repeat("a", 11),
			LastName:  "Petrova",
			Login:     "anna",
			Password:  strings.Repeat("p", 11),
		})
		assert.Equal(t, map[string]string{"firstName": "INVALID_FIRSTNAME", "password": "INVALID_PASSWORD"}, codesOf(t, err))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := v.Struct(&dto.RegisterRequest{})
		assert.Len(t, codesOf(t, err), 4)
	})
}

func TestEditProfilePasswordCodes(t *testing.T) {
	err := newValidator().Struct(&dto.EditProfileRequest{FirstName: "Anna", LastName: "Petrova", NewPassword: "p"})

	assert.Equal(t, map[string]string{"oldPassword": "INVALID_PASSWORD", "newPassword": "INVALID_PASSWORD"}, codesOf(t, err))
}

func TestEditNoteRequest(t *testing.T) {
	v := newValidator()
	blank := "   "
	section := int64(2)

	assert.Equal(t, map[string]string{"parameters": "All_PARAMETERS_CANNOT_BE_NULL"}, codesOf(t, v.Struct(&dto.EditNoteRequest{})))
	assert.Equal(t, map[string]string{"body": "INVALID_BODY"}, codesOf(t, v.Struct(&dto.EditNoteRequest{Body: &blank})))
	assert.NoError(t, v.Struct(&dto.EditNoteRequest{SectionID: &section}))
}

func TestSectionAndRating(t *testing.T) {
	v := newValidator()
	low, ok := 0, 5

	assert.Equal(t, map[string]string{"name": "INVALID_NAME"}, codesOf(t, v.Struct(&dto.SectionRequest{Name: "a/b"})))
	assert.NoError(t, v.Struct(&dto.SectionRequest{Name: "my_section-1"}))
	assert.Equal(t, map[string]string{"rating": "INVALID_RATING"}, codesOf(t, v.Struct(&dto.RateRequest{Rating: &low})))
	assert.Equal(t, map[string]string{"rating": "INVALID_RATING"}, codesOf(t, v.Struct(&dto.RateRequest{})))
	assert.NoError(t, v.Struct(&dto.RateRequest{Rating: &ok}))
}
