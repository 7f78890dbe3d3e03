// Package xyzio coding=utf-8
// @Project : molstack
// @File    : xyzio.go
//
// Package xyzio writes the OutputXYZ runner's per-stack output: an XYZ
// coordinate file plus a sibling JSON atom-map sidecar recording the
// sparse -> continuous index correspondence.
package xyzio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cx-luo/molstack/internal/molecule"
)

// Options controls the prefix/suffix lines and path layout an OutputXYZ
// step writes with.
type Options struct {
	Prefix     string
	Suffix     string
	PathPrefix string
	Extension  string
}

// Write renders m as an XYZ file at PathPrefix/<title>.<extension> and a
// sibling <title>.atommap.json, per §6. Returns the two paths written.
func Write(m *molecule.MoleculeLayer, opts Options) (xyzPath, atomMapPath string, err error) {
	xyzPath = filepath.Join(opts.PathPrefix, m.Title+"."+opts.Extension)
	atomMapPath = filepath.Join(opts.PathPrefix, m.Title+".atommap.json")

	if _, statErr := os.Stat(xyzPath); statErr == nil {
		return "", "", fmt.Errorf("xyzio: %q already exists", xyzPath)
	}

	var body strings.Builder
	if opts.Prefix != "" {
		body.WriteString(opts.Prefix)
		body.WriteByte('\n')
	}

	atomMap := map[int]int{}
	var atomLines strings.Builder
	count := 0
	for i := 0; i < m.Atoms.Len(); i++ {
		atom := m.Atoms.ReadAtom(i)
		if atom == nil || !atom.Valid() {
			continue
		}
		symbol, _ := atom.Symbol()
		ci, _ := m.Atoms.ToContinuousIndex(i)
		atomMap[i] = ci
		fmt.Fprintf(&atomLines, "%s %f %f %f\n", symbol, atom.Position.X, atom.Position.Y, atom.Position.Z)
		count++
	}

	fmt.Fprintf(&body, "%d\n", count)
	body.WriteString(m.Title)
	body.WriteByte('\n')
	body.WriteString(atomLines.String())
	if opts.Suffix != "" {
		body.WriteString(opts.Suffix)
		body.WriteByte('\n')
	}

	if err := os.MkdirAll(opts.PathPrefix, 0o755); err != nil {
		return "", "", fmt.Errorf("xyzio: %w", err)
	}
	if err := os.WriteFile(xyzPath, []byte(body.String()), 0o644); err != nil {
		return "", "", fmt.Errorf("xyzio: %w", err)
	}

	mapData, err := json.Marshal(atomMap)
	if err != nil {
		return "", "", fmt.Errorf("xyzio: %w", err)
	}
	if err := os.WriteFile(atomMapPath, mapData, 0o644); err != nil {
		return "", "", fmt.Errorf("xyzio: %w", err)
	}

	return xyzPath, atomMapPath, nil
}
