package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cx-luo/molstack/internal/molecule"
)

// File is a workflow input file (§6): a base molecule, an ordered list
// of steps (each either inline or a load: reference, resolved at parse
// time), and an optional flag suppressing checkpointing entirely.
type File struct {
	Base         molecule.MoleculeLayer `yaml:"base"`
	Steps        []Step                 `yaml:"steps"`
	NoCheckpoint bool                   `yaml:"no_checkpoint,omitempty"`
}

// LoadFile parses a workflow input file from path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workflow: reading %q: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("workflow: parsing %q: %w", path, err)
	}
	return &f, nil
}
