// internal/words/words.go
//
// Word type and parsing for the solver.
//
// A Word is exactly five ASCII letters held as raw bytes. Words are
// lowercased on parse; anything outside a–z is rejected.
//
// Errors:
//   ErrWordLen  - input is not exactly 5 bytes.
//   ErrWordChar - input contains a byte outside a–z after lowercasing.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// Len is the fixed number of letters in a Word.
const Len = 5

var (
	ErrWordLen  = errors.New("words: word must be 5 letters")
	ErrWordChar = errors.New("words: word must contain only letters a-z")
)

// Word is an immutable 5-letter word.
type Word [Len]byte

// Parse validates s and returns it as a Word.
func Parse(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Len {
		return w, ErrWordLen
	}
	if !isAlpha(s) {
		return w, ErrWordChar
	}
	copy(w[:], s)
	return w, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseAll parses a list of strings, stopping at the first invalid entry.
func ParseAll(list []string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for i, s := range list {
		w, err := Parse(s)
		if err != nil {
			return nil, &ListError{Index: i, Value: s, Err: err}
		}
		out = append(out, w)
	}
	return out, nil
}

func (w Word) String() string { return string(w[:]) }

// Strings converts words back to their string form.
func Strings(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// ListError reports which entry of a word list failed to parse.
type ListError struct {
	List  string
	Index int
	Value string
	Err   error
}

func (e *ListError) Error() string {
	name := e.List
	if name == "" {
		name = "list"
	}
	return fmt.Sprintf("words: %s[%d] %q: %v", name, e.Index, e.Value, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
