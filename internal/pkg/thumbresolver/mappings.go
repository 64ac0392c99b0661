package thumbresolver

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// Mappings are the fallback tables consulted when a requested thumbnail
// identifier no longer matches a real file. They exist because historical
// upload/rename cycles left game records pointing at filenames that are gone;
// the tables are disposable seed data, loaded once at startup and immutable
// for the process lifetime.
type Mappings struct {
	// Direct is keyed by "game_<id>" and wins over everything else.
	Direct map[string]string `json:"direct"`
	// ByID maps a numeric game id (as a decimal string, JSON keys being
	// strings) to an asset filename.
	ByID map[string]string `json:"by_id"`
	// ByName maps an exact game title to an asset filename.
	ByName map[string]string `json:"by_name"`
	// ByHash maps legacy content-hash filenames to their replacements.
	ByHash map[string]string `json:"by_hash"`
}

// EmptyMappings is the clean-slate configuration: only the existing-file,
// modulo and default steps of the cascade remain live.
func EmptyMappings() *Mappings {
	return &Mappings{
		Direct: map[string]string{},
		ByID:   map[string]string{},
		ByName: map[string]string{},
		ByHash: map[string]string{},
	}
}

// LoadMappings reads the fallback tables from a JSON file. A missing file is
// not an error: it yields empty tables.
func LoadMappings(path string) (*Mappings, error) {
	if path == "" {
		return EmptyMappings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EmptyMappings(), nil
		}
		return nil, fmt.Errorf("read fallback mappings: %w", err)
	}

	m := EmptyMappings()
	if err := sonic.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse fallback mappings: %w", err)
	}
	if m.Direct == nil {
		m.Direct = map[string]string{}
	}
	if m.ByID == nil {
		m.ByID = map[string]string{}
	}
	if m.ByName == nil {
		m.ByName = map[string]string{}
	}
	if m.ByHash == nil {
		m.ByHash = map[string]string{}
	}
	return m, nil
}
