// Package idset coding=utf-8
// @Project : molstack
// @File    : serde.go
package idset

import "encoding/json"

// MarshalJSON renders the map as {name: index}.
func (m IdMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.byName)
}

// UnmarshalJSON parses {name: index}.
func (m *IdMap) UnmarshalJSON(data []byte) error {
	byName := map[string]int{}
	if err := json.Unmarshal(data, &byName); err != nil {
		return err
	}
	m.byName = byName
	return nil
}

// MarshalYAML renders the map as {name: index}.
func (m IdMap) MarshalYAML() (interface{}, error) {
	return m.byName, nil
}

// UnmarshalYAML parses {name: index}.
func (m *IdMap) UnmarshalYAML(unmarshal func(interface{}) error) error {
	byName := map[string]int{}
	if err := unmarshal(&byName); err != nil {
		return err
	}
	m.byName = byName
	return nil
}

// GobEncode/GobDecode delegate to the JSON form, for checkpointing.
func (m IdMap) GobEncode() ([]byte, error) { return m.MarshalJSON() }

func (m *IdMap) GobDecode(data []byte) error { return m.UnmarshalJSON(data) }
