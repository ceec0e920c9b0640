package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/opencoil/coilwinder/internal/model"
)

// DefaultWiresPath returns the default file path for the custom wire store.
func DefaultWiresPath() string {
	return filepath.Join(DefaultConfigDir(), "wires.json")
}

// SaveCustomWires saves custom wires to a JSON file.
func SaveCustomWires(path string, wires []model.Wire) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(wires, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomWires loads custom wires from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomWires(path string) ([]model.Wire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Wire{}, nil
		}
		return nil, err
	}
	var wires []model.Wire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, err
	}
	return wires, nil
}

// AddCustomWires merges new wires into the store at path. Wires with a
// name already present replace the stored entry.
func AddCustomWires(path string, wires []model.Wire) error {
	existing, err := LoadCustomWires(path)
	if err != nil {
		return err
	}
	byName := make(map[string]int, len(existing))
	for i, w := range existing {
		byName[w.Name] = i
	}
	for _, w := range wires {
		if i, ok := byName[w.Name]; ok {
			existing[i] = w
			continue
		}
		byName[w.Name] = len(existing)
		existing = append(existing, w)
	}
	return SaveCustomWires(path, existing)
}
