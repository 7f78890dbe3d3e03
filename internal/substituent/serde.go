package substituent

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/molecule"
)

// substituentYAML is the wire shape of a substituent definition file:
// direction/on_body selectors plus an inline or path-referenced
// MoleculeLayer and the substituent's name.
type substituentYAML struct {
	Direction       layer.SelectOne        `yaml:"direction"`
	OnBody          layer.SelectOne        `yaml:"on_body"`
	Structure       molecule.MoleculeLayer `yaml:"structure"`
	SubstituentName string                 `yaml:"substituent_name"`
}

func (s *Substituent) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form substituentYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	structure := form.Structure
	s.Structure = &structure
	s.Direction = form.Direction
	s.OnBody = form.OnBody
	s.Name = form.SubstituentName
	return nil
}

// LoadFile parses a single substituent definition file at path.
func LoadFile(path string) (*Substituent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sub Substituent
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
