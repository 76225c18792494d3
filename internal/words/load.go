// internal/words/load.go
//
// Word list loading.
//
// Lists:
//   - "history": prior answers (benchmark corpus).
//   - "words":   extra valid guesses that have not been answers.
//
// The vocabulary handed to the solver is history ++ words, history first,
// in file order. Order matters: it decides guess-selection tie-breaks.
//
// Sources (LoadFromEnv):
//   1. WORDS_HISTORY_FILE / WORDS_EXTRA_FILE, when set, are read as JSON
//      arrays of strings.
//   2. Whichever is unset falls back to the embedded list in assets.

package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Lists holds the two loaded word lists.
type Lists struct {
	History []Word
	Extra   []Word
}

// Vocabulary returns history ++ extra as a fresh slice.
// Callers treat the result as read-only.
func (l *Lists) Vocabulary() []Word {
	out := make([]Word, 0, len(l.History)+len(l.Extra))
	out = append(out, l.History...)
	return append(out, l.Extra...)
}

// Stats returns list sizes: (history, extra).
func (l *Lists) Stats() (historyCount int, extraCount int) {
	return len(l.History), len(l.Extra)
}

// LoadFromEnv loads both lists using WORDS_HISTORY_FILE and WORDS_EXTRA_FILE,
// falling back to the embedded defaults for any that is unset.
func LoadFromEnv() (*Lists, error) {
	return Load(os.Getenv("WORDS_HISTORY_FILE"), os.Getenv("WORDS_EXTRA_FILE"))
}

// Load reads the history and extra lists. An empty path selects the
// embedded list.
func Load(historyPath, extraPath string) (*Lists, error) {
	hist, err := loadList("history", historyPath, assets.HistoryList)
	if err != nil {
		return nil, err
	}
	extra, err := loadList("words", extraPath, assets.WordsList)
	if err != nil {
		return nil, err
	}
	if len(hist) == 0 {
		return nil, errors.New("words: history list is empty")
	}
	return &Lists{History: hist, Extra: extra}, nil
}

func loadList(name, path string, embedded func() ([]string, error)) ([]Word, error) {
	var (
		raw []string
		err error
	)
	switch {
	case path != "":
		raw, err = readWordFile(path)
	default:
		raw, err = embedded()
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", name, err)
	}
	ws, err := ParseAll(raw)
	if err != nil {
		var le *ListError
		if errors.As(err, &le) {
			le.List = name
		}
		return nil, err
	}
	return ws, nil
}

// readWordFile decodes a JSON array of strings from path.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	if err := json.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// Index builds a lookup from word to its first position in vocab.
func Index(vocab []Word) map[Word]int {
	m := make(map[Word]int, len(vocab))
	for i, w := range vocab {
		if _, ok := m[w]; !ok {
			m[w] = i
		}
	}
	return m
}
