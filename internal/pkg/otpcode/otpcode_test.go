package otpcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric()

	t.Run("SixDigits", func(t *testing.T) {
		for range 50 {
			code, err := gen.Generate()
			require.NoError(t, err)
			require.Len(t, code, Length)
			for _, r := range code {
				require.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, code)
			}
		}
	})

	t.Run("NotConstant", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 20 {
			code, err := gen.Generate()
			require.NoError(t, err)
			seen[code] = struct{}{}
		}
		// 20 identical draws from a million-value space means a broken
		// generator, not bad luck.
		assert.Greater(t, len(seen), 1)
	})
}

func TestStaticGenerate(t *testing.T) {
	gen := &Static{Code: "123456"}

	code, err := gen.Generate()

	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}
