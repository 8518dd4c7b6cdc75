package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Club is one tracked organization as listed in the manifest file.
type Club struct {
	Name       string   `yaml:"name"`
	Genre      string   `yaml:"genre"`
	Instagram  string   `yaml:"instagram"`
	Categories []string `yaml:"categories"`
}

type Manifest struct {
	Clubs []Club
}

// Load reads a YAML list of clubs. A missing file is reported with an error matching os.ErrNotExist.
func Load(path string) (*Manifest, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand manifest path: %w", err)
	}

	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	var clubs []Club
	if err := yaml.Unmarshal(b, &clubs); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", expanded, err)
	}
	return &Manifest{Clubs: clubs}, nil
}

// Handles returns the distinct Instagram handles in file order.
// A leading "@" and surrounding whitespace are dropped; entries without a handle are ignored.
func (m *Manifest) Handles() []string {
	seen := make(map[string]struct{}, len(m.Clubs))
	handles := make([]string, 0, len(m.Clubs))
	for _, club := range m.Clubs {
		h := strings.TrimPrefix(strings.TrimSpace(club.Instagram), "@")
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		handles = append(handles, h)
	}
	return handles
}
