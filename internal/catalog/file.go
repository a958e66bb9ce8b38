package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Materials []Option `yaml:"materials"`
	Sizes     []Option `yaml:"sizes"`
	Features  []Option `yaml:"features"`
}

// LoadFile reads a YAML catalog:
//
//	materials:
//	  - {key: leather, label: Genuine Leather, value: 25}
//	sizes:
//	  - {key: slim, label: Slim, value: 1}
//	features:
//	  - {key: rfid, label: RFID Blocking, value: 8}
//
// Features left out of the file keep their default cost.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (*Table, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	if len(doc.Materials) == 0 {
		return nil, fmt.Errorf("%w: catalog file lists no materials", ErrInvalidOption)
	}
	if len(doc.Sizes) == 0 {
		return nil, fmt.Errorf("%w: catalog file lists no sizes", ErrInvalidOption)
	}

	features := mergeFeatures(doc.Features)
	table := NewTable("file", doc.Materials, doc.Sizes, features)

	for _, group := range [][]Option{table.materials, table.sizes, table.features} {
		seen := make(map[string]struct{}, len(group))
		for _, opt := range group {
			if err := Validate(opt); err != nil {
				return nil, fmt.Errorf("catalog file %s %q: %w", opt.Kind, opt.Key, err)
			}
			if _, dup := seen[opt.Key]; dup {
				return nil, fmt.Errorf("%w: duplicate %s key %q", ErrInvalidOption, opt.Kind, opt.Key)
			}
			seen[opt.Key] = struct{}{}
		}
	}

	return table, nil
}

func mergeFeatures(overrides []Option) []Option {
	features := DefaultFeatures()
	for _, o := range overrides {
		matched := false
		for i := range features {
			if features[i].Key == o.Key {
				if o.Label != "" {
					features[i].Label = o.Label
				}
				features[i].Value = o.Value
				matched = true
			}
		}
		if !matched {
			// Kept so Validate reports the unknown key.
			features = append(features, o)
		}
	}
	return features
}
