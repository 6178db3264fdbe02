package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	jerrors "jdkswitch/internal/errors"
)

// FileStore keeps variables in a YAML file. It stands in for the registry
// on systems that have none. Every call reads the file again.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, jerrors.IOf(err, "reading %s", f.path)
	}

	vars := map[string]string{}
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, jerrors.IOf(err, "decoding %s", f.path)
	}
	if vars == nil {
		vars = map[string]string{}
	}
	return vars, nil
}

func lookupFold(vars map[string]string, name string) (string, bool) {
	for k := range vars {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

func (f *FileStore) Get(name string) (string, error) {
	vars, err := f.load()
	if err != nil {
		return "", err
	}
	key, ok := lookupFold(vars, name)
	if !ok {
		return "", jerrors.NotFoundf("variable %s is not set", name)
	}
	return vars[key], nil
}

func (f *FileStore) Set(name, value string) error {
	vars, err := f.load()
	if err != nil {
		return err
	}
	if key, ok := lookupFold(vars, name); ok {
		name = key
	}
	vars[name] = value

	data, err := yaml.Marshal(vars)
	if err != nil {
		return jerrors.IOf(err, "encoding %s", f.path)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return jerrors.IOf(err, "creating %s", filepath.Dir(f.path))
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return jerrors.IOf(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return jerrors.IOf(err, "replacing %s", f.path)
	}
	return nil
}
