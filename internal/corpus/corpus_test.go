package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affinityhq/affinity/pkg/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_JSONList(t *testing.T) {
	path := writeFile(t, "people.json", `[
		{"name": "zoe", "preferences": "pottery wheels, glazing"},
		{"name": "amir", "preferences": "chess openings, endgames"}
	]`)

	people, err := LoadFile(path)
	require.NoError(t, err)
	// List layout keeps file order.
	assert.Equal(t, []models.Person{
		{Name: "zoe", Preferences: "pottery wheels, glazing"},
		{Name: "amir", Preferences: "chess openings, endgames"},
	}, people)
}

func TestLoadFile_JSONMap(t *testing.T) {
	path := writeFile(t, "people.json", `{
		"zoe": "pottery wheels",
		"amir": "chess openings"
	}`)

	people, err := LoadFile(path)
	require.NoError(t, err)
	// Map layout is ordered by sorted name.
	assert.Equal(t, []models.Person{
		{Name: "amir", Preferences: "chess openings"},
		{Name: "zoe", Preferences: "pottery wheels"},
	}, people)
}

func TestLoadFile_YAMLList(t *testing.T) {
	path := writeFile(t, "people.yaml", `
- name: zoe
  preferences: pottery wheels, glazing
- name: amir
  preferences: chess openings, endgames
`)

	people, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "zoe", people[0].Name)
	assert.Equal(t, "chess openings, endgames", people[1].Preferences)
}

func TestLoadFile_YAMLMap(t *testing.T) {
	path := writeFile(t, "people.yml", `
zoe: pottery wheels
amir: chess openings
`)

	people, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Person{
		{Name: "amir", Preferences: "chess openings"},
		{Name: "zoe", Preferences: "pottery wheels"},
	}, people)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errIs   error
	}{
		{
			name:    "unsupported extension",
			file:    "people.txt",
			content: "zoe: pottery",
			errIs:   ErrUnsupportedFormat,
		},
		{
			name:    "empty name in list",
			file:    "people.json",
			content: `[{"name": "", "preferences": "quiet walks"}]`,
			errIs:   ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	_, err := LoadFile(writeFile(t, "people.json", `{"zoe": `))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
