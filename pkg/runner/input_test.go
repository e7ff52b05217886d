package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInput_Length(t *testing.T) {
	limit := DefaultMaxInputLength

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Under Limit", strings.Repeat("a", limit-1), false},
		{"Exact Limit", strings.Repeat("a", limit), false},
		{"Over Limit", strings.Repeat("a", limit+1), true},
		{"Multibyte Counted As Runes", strings.Repeat("é", limit), false},
		{"Multibyte Over Limit", strings.Repeat("é", limit+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLong)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckInput_ControlCharactersAccepted(t *testing.T) {
	for _, input := range []string{"a\x01b", "\x07", "\x1b[31m", "a\x00b", "ab\tc"} {
		assert.NoError(t, CheckInput(input), "%q", input)
	}
}

func TestCheckInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputLength, "3")

	assert.ErrorIs(t, CheckInput("abca"), ErrInputTooLong)
	assert.NoError(t, CheckInput("abc"))
	assert.NoError(t, CheckInput("ééé"))
}

func TestCheckInput_InvalidUTF8(t *testing.T) {
	assert.ErrorIs(t, CheckInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98"), ErrInvalidUTF8)
}
