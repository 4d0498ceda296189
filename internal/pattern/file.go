package pattern

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

type file struct {
	Patterns []fileEntry `yaml:"patterns"`
}

// LoadFile reads patterns from a YAML document of the form
//
//	patterns:
//	  - name: lwss
//	    rows: [".O..O", "O....", "O...O", "OOOO."]
func LoadFile(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read pattern file %s", path)
	}
	return Decode(data)
}

// Decode parses the YAML pattern document in data.
func Decode(data []byte) ([]Pattern, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "decode pattern file")
	}
	if len(f.Patterns) == 0 {
		return nil, eris.New("pattern file defines no patterns")
	}
	out := make([]Pattern, 0, len(f.Patterns))
	for i, e := range f.Patterns {
		if e.Name == "" {
			return nil, eris.Errorf("pattern %d has no name", i)
		}
		p, err := Parse(e.Name, e.Rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
