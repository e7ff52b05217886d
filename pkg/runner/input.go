package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

// DefaultMaxInputLength bounds one input string, in runes. Every rune is a
// symbol, so this is also the longest run a caller can request.
const DefaultMaxInputLength = 1000

// EnvMaxInputLength overrides DefaultMaxInputLength when set to a positive integer.
const EnvMaxInputLength = "AUTOMATA_MAX_INPUT_LENGTH"

var (
	ErrInputTooLong = errors.New("input exceeds maximum length")
	ErrInvalidUTF8  = errors.New("input contains invalid UTF-8 sequences")
)

// CheckInput reports whether input may be run. The string itself is never
// altered: control characters, spaces and escapes are symbols like any other
// and reach the automaton as typed.
func CheckInput(input string) error {
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	limit := maxInputLength()
	if n := utf8.RuneCountInString(input); n > limit {
		return fmt.Errorf("%w: length=%d limit=%d", ErrInputTooLong, n, limit)
	}
	return nil
}

func maxInputLength() int {
	if val := os.Getenv(EnvMaxInputLength); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxInputLength
}
