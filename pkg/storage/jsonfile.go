package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

// JSONFile stores the collection as one JSON blob on disk.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

func (s *JSONFile) Load() ([]model.Task, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var tasks []model.Task
	if err := json.NewDecoder(f).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task file %s: %w", s.Path, err)
	}
	return tasks, nil
}

func (s *JSONFile) Save(tasks []model.Task) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if tasks == nil {
		tasks = []model.Task{}
	}
	return encoder.Encode(tasks)
}
