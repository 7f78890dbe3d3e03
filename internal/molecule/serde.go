// Package molecule coding=utf-8
// @Project : molstack
// @File    : serde.go
//
// A MoleculeLayer in a workflow/step/substituent YAML file may be written
// three ways (§3, §6): a bare file-path scalar, inline {atoms,bonds,...},
// or a list of named components assembled via offset+migrate. This file
// implements that three-way loader.
package molecule

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cx-luo/molstack/internal/groupset"
	"github.com/cx-luo/molstack/internal/idset"
	"github.com/cx-luo/molstack/internal/sparse"
)

type inlineForm struct {
	Atoms  sparse.AtomList      `yaml:"atoms" json:"atoms"`
	Bonds  sparse.BondMatrix    `yaml:"bonds" json:"bonds"`
	Ids    *idset.IdMap         `yaml:"ids,omitempty" json:"ids,omitempty"`
	Groups *groupset.GroupName  `yaml:"groups,omitempty" json:"groups,omitempty"`
	Title  string               `yaml:"title,omitempty" json:"title,omitempty"`
}

type componentForm struct {
	Name     string        `yaml:"name"`
	Content  MoleculeLayer `yaml:"content"`
	Capacity int           `yaml:"capacity"`
}

// MarshalJSON renders the molecule in its inline form — used for the
// Function runner's stacks.json external-process protocol.
func (m MoleculeLayer) MarshalJSON() ([]byte, error) {
	form := inlineForm{Atoms: *m.Atoms, Bonds: *m.Bonds, Title: m.Title}
	if m.Ids != nil {
		form.Ids = m.Ids
	}
	if m.Groups != nil {
		form.Groups = m.Groups
	}
	return json.Marshal(form)
}

// UnmarshalYAML loads a MoleculeLayer from any of its three YAML forms.
func (m *MoleculeLayer) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var path string
		if err := value.Decode(&path); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("molecule: unable to load sparse molecule file from path %q: %w", path, err)
		}
		var loaded MoleculeLayer
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("molecule: %q: %w", path, err)
		}
		*m = loaded
		return nil

	case yaml.SequenceNode:
		var components []componentForm
		if err := value.Decode(&components); err != nil {
			return err
		}
		assembled := New()
		for _, component := range components {
			content := component.Content
			content.ExtendTo(component.Capacity)
			if content.Len() == 0 {
				return fmt.Errorf("molecule: capacity of component %q is 0, invalid", component.Name)
			}
			named := groupset.New()
			for idx := 0; idx < content.Len(); idx++ {
				named.Add(component.Name, idx)
			}
			if content.Groups != nil {
				content.Groups = content.Groups.Union(named)
			} else {
				content.Groups = named
			}
			assembled.Migrate(content.Offset(assembled.Len()))
		}
		*m = *assembled
		return nil

	default:
		var form inlineForm
		if err := value.Decode(&form); err != nil {
			return err
		}
		*m = MoleculeLayer{
			Atoms:  &form.Atoms,
			Bonds:  &form.Bonds,
			Ids:    form.Ids,
			Groups: form.Groups,
			Title:  form.Title,
		}
		return nil
	}
}
