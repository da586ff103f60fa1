// Package corpus loads people and their preference texts from JSON and
// YAML files. Two layouts are accepted: a list of {name, preferences}
// entries, which keeps its file order, and a map of name to
// preferences, which is ordered by sorted name.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/affinityhq/affinity/pkg/models"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .json, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("corpus: unsupported file format")

	// ErrMissingName is returned when a list entry has an empty name.
	ErrMissingName = errors.New("corpus: entry with empty name")
)

// LoadFile reads and parses the corpus file at path. The format is
// picked by extension.
func LoadFile(path string) ([]models.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Parse(data, json.Unmarshal)
	case ".yaml", ".yml":
		return Parse(data, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes data with unmarshal, trying the list layout first and
// falling back to the name-to-preferences map.
func Parse(data []byte, unmarshal func([]byte, any) error) ([]models.Person, error) {
	var list []models.Person
	if err := unmarshal(data, &list); err == nil {
		for i, p := range list {
			if p.Name == "" {
				return nil, fmt.Errorf("%w: entry %d", ErrMissingName, i)
			}
		}
		return list, nil
	}

	var byName map[string]string
	if err := unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("corpus: parse: %w", err)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	people := make([]models.Person, len(names))
	for i, name := range names {
		people[i] = models.Person{Name: name, Preferences: byName[name]}
	}
	return people, nil
}
