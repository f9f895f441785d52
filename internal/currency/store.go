package currency

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const selectionFile = "currency.json"

// FileStore persists the selected currency code as a small JSON file in
// the user config dir, surviving across runs.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at the user config dir. Pass a
// non-empty dir to override, mainly for tests.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "bankroll")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

type savedSelection struct {
	Code string `json:"code"`
}

// SaveCode implements Store.
func (f *FileStore) SaveCode(code string) error {
	data, err := json.MarshalIndent(savedSelection{Code: code}, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(f.dir, selectionFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadCode implements Store. A missing file is not an error; it means
// no selection has been saved yet.
func (f *FileStore) LoadCode() (string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, selectionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var saved savedSelection
	if err := json.Unmarshal(data, &saved); err != nil {
		return "", err
	}
	return saved.Code, nil
}
