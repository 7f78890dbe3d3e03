// Package groupset coding=utf-8
// @Project : molstack
// @File    : serde.go
package groupset

import (
	"encoding/json"
	"sort"
)

// MarshalJSON renders the relation as {name: [indexes...]}, indexes sorted
// for determinism.
func (g GroupName) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.toSortedMap())
}

func (g GroupName) toSortedMap() map[string][]int {
	out := make(map[string][]int, len(g.byName))
	for name, set := range g.byName {
		indexes := make([]int, 0, len(set))
		for idx := range set {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)
		out[name] = indexes
	}
	return out
}

func (g *GroupName) fromMap(m map[string][]int) {
	g.byName = map[string]map[int]struct{}{}
	for name, indexes := range m {
		for _, idx := range indexes {
			g.Add(name, idx)
		}
	}
}

// UnmarshalJSON parses {name: [indexes...]}.
func (g *GroupName) UnmarshalJSON(data []byte) error {
	var m map[string][]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	g.fromMap(m)
	return nil
}

// MarshalYAML renders the relation as {name: [indexes...]}.
func (g GroupName) MarshalYAML() (interface{}, error) {
	return g.toSortedMap(), nil
}

// UnmarshalYAML parses {name: [indexes...]}.
func (g *GroupName) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var m map[string][]int
	if err := unmarshal(&m); err != nil {
		return err
	}
	g.fromMap(m)
	return nil
}

// GobEncode/GobDecode delegate to the JSON form, for checkpointing.
func (g GroupName) GobEncode() ([]byte, error) { return g.MarshalJSON() }

func (g *GroupName) GobDecode(data []byte) error { return g.UnmarshalJSON(data) }
