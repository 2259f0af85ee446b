package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	FullName        string `validate:"required,alphaspace"`
	Email           string `validate:"required,email"`
	MobileNumber    string `validate:"required,mobile"`
	Password        string `validate:"required,password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func validForm() signupForm {
	return signupForm{
		FullName:        "Ana Pereira",
		Email:           "ana@example.com",
		MobileNumber:    "+15551234567",
		Password:        "Sup3r@Secret",
		ConfirmPassword: "Sup3r@Secret",
	}
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("ValidInput", func(t *testing.T) {
		assert.NoError(t, v.Validate(validForm()))
	})

	t.Run("SnakeCaseFieldKeys", func(t *testing.T) {
		form := validForm()
		form.Email = "not-an-email"
		form.ConfirmPassword = "Different@1"

		err := v.Validate(form)

		var fieldErrs V10ValidationError
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Values(), "email")
		assert.Contains(t, fieldErrs.Values(), "confirm_password")
		assert.NotContains(t, fieldErrs.Values(), "Email")
	})

	t.Run("PasswordRule", func(t *testing.T) {
		form := validForm()
		form.Password = "short"
		form.ConfirmPassword = "short"

		err := v.Validate(form)

		var fieldErrs V10ValidationError
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Values(), "password")
	})

	t.Run("MobileRule", func(t *testing.T) {
		form := validForm()
		form.MobileNumber = "call-me-maybe"

		err := v.Validate(form)

		var fieldErrs V10ValidationError
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Values(), "mobile_number")
	})

	t.Run("AlphaspaceRule", func(t *testing.T) {
		form := validForm()
		form.FullName = "Ana 123"

		err := v.Validate(form)

		var fieldErrs V10ValidationError
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Values(), "full_name")
	})
}
