// assets/embed.go
//
// Embedded fallback word lists and SQL migrations.
//   - history.json: prior answers, used for benchmarking.
//   - words.json:   extra valid guesses never used as answers.
//   - sql/*.sql:    schema for the benchmark history store.

package assets

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed history.json words.json sql/*.sql
var FS embed.FS

// readList decodes a JSON array of strings from the embedded filesystem.
func readList(name string) ([]string, error) {
	b, err := FS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

func HistoryList() ([]string, error) {
	return readList("history.json")
}

func WordsList() ([]string, error) {
	return readList("words.json")
}
