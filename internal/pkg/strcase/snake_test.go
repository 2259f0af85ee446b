package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"Email":           "email",
		"FullName":        "full_name",
		"MobileNumber":    "mobile_number",
		"ConfirmPassword": "confirm_password",
		"HTTPCode":        "http_code",
		"UserID":          "user_id",
		"already_snake":   "already_snake",
		"Page2Size":       "page2_size",
	}

	for in, want := range cases {
		assert.Equal(t, want, ToLowerSnake(in), "input %q", in)
	}
}
