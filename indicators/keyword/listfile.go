package keyword

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Names of the lists recognized in a keyword list file.
const (
	ListTrollKeywords = "troll-keywords"
	ListNotePhrases   = "note-phrases"
)

// Loads named keyword lists from a JSON file shaped like:
//
//	{"troll-keywords": ["..."], "note-phrases": ["..."]}
//
// Unknown list names are kept; it is up to the caller which ones to use.
func LoadListsJSON(p string) (map[string][]string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var lists map[string][]string
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, fmt.Errorf("parsing keyword list file %s: %w", p, err)
	}
	return lists, nil
}
