package energyplus

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("1010101010101010101010101")
	require.NoError(t, err)
	assert.Equal(t, "1010101010101010101010101", c.String())
}

func TestParseCommandLength(t *testing.T) {
	for n := 0; n <= 2*CommandLength; n++ {
		if n == CommandLength {
			continue
		}
		_, err := ParseCommand(strings.Repeat("1", n))
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, ErrInvalidCommandLength))
		assert.False(t, errors.Is(err, ErrInvalidSymbol))

		var lerr *CommandLengthError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, n, lerr.Length)
	}
}

func TestParseCommandCountsCharacters(t *testing.T) {
	// 24 ASCII bits plus one two-byte rune
	_, err := ParseCommand(strings.Repeat("0", 24) + "é")
	var serr *SymbolError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 'é', serr.Symbol)
	assert.Equal(t, 24, serr.Index)
}

func TestParseCommandSymbol(t *testing.T) {
	for _, bad := range []rune{'2', 'a', ' ', 'O', '\x00'} {
		for _, pos := range []int{0, 12, CommandLength - 1} {
			b := []rune(strings.Repeat("0", CommandLength))
			b[pos] = bad
			_, err := ParseCommand(string(b))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSymbol))

			var serr *SymbolError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, bad, serr.Symbol)
			assert.Equal(t, pos, serr.Index)
		}
	}
}
