package storage

import (
	"encoding/json"

	"ui_automation/domain/interfaces"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Record is one parametrization of a scenario, read by key
type Record struct {
	values map[string]interface{}
	raw    string
}

// NewRecord - wraps decoded record values
func NewRecord(values map[string]interface{}) (Record, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to encode record")
	}
	return Record{values: values, raw: string(raw)}, nil
}

// LoadRecords - loads the records of scenario from file
func LoadRecords(source interfaces.DataSource, file, scenario string) ([]Record, error) {
	rows, err := source.Load(file, scenario)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record, err := NewRecord(row)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", file, scenario)
		}
		records = append(records, record)
	}
	return records, nil
}

// Values - returns the decoded record
func (r Record) Values() map[string]interface{} {
	return r.values
}

// Get - returns the value at a gjson path such as "products.Blackberry.0"
func (r Record) Get(path string) gjson.Result {
	return gjson.Get(r.raw, path)
}

// Has - reports whether path exists
func (r Record) Has(path string) bool {
	return r.Get(path).Exists()
}

func (r Record) String(path string) string {
	return r.Get(path).String()
}

func (r Record) Float(path string) float64 {
	return r.Get(path).Float()
}

func (r Record) Int(path string) int {
	return int(r.Get(path).Int())
}

// Strings - returns the array at path as strings, or the sorted keys of an object
func (r Record) Strings(path string) []string {
	value := r.Get(path)
	var out []string
	value.ForEach(func(key, item gjson.Result) bool {
		if value.IsObject() {
			out = append(out, key.String())
		} else {
			out = append(out, item.String())
		}
		return true
	})
	return out
}

// Decode - fills target from the record; struct fields are matched by their json tag
func (r Record) Decode(target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create record decoder")
	}
	if err := decoder.Decode(r.values); err != nil {
		return errors.Wrap(err, "failed to decode record")
	}
	return nil
}
