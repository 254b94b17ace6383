// Package storage loads scenario data files and keeps run results on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"ui_automation/domain/interfaces"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileSource reads data files from a file system. Each file maps a scenario
// name to the list of records the scenario is run with.
type fileSource struct {
	fsys fs.FS
}

// NewFileSource - creates data source reading files from fsys
func NewFileSource(fsys fs.FS) interfaces.DataSource {
	return &fileSource{fsys: fsys}
}

// NewDirSource - creates data source reading files from a directory
func NewDirSource(dir string) interfaces.DataSource {
	return NewFileSource(os.DirFS(dir))
}

// Load - reads file and returns the records of scenario; a missing scenario is an empty list
func (s *fileSource) Load(file, scenario string) ([]map[string]interface{}, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(file))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read data file %q", file)
	}

	var scenarios map[string][]map[string]interface{}
	if err := ParseJSONOrYAML(data, &scenarios); err != nil {
		return nil, errors.Wrapf(err, "failed to parse data file %q", file)
	}
	return scenarios[scenario], nil
}

// ParseJSONOrYAML - decodes data as JSON, falling back to YAML converted to its JSON equivalent
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	normalized, err := normalizeYAML(raw)
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

// normalizeYAML turns map[interface{}]interface{} nodes into JSON objects
func normalizeYAML(data interface{}) (interface{}, error) {
	switch data := data.(type) {
	case []interface{}:
		out := make([]interface{}, 0, len(data))
		for _, v := range data {
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out = append(out, v1)
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(data))
		for k, v := range data {
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out[k] = v1
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(data))
		for k, v := range data {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("data contained a map key of type %T; only string keys are allowed", k)
			}
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out[key] = v1
		}
		return out, nil
	default:
		return data, nil
	}
}
