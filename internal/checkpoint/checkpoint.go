// Package checkpoint coding=utf-8
// @Project : molstack
// @File    : checkpoint.go
//
// Package checkpoint persists and restores workflow driver state between
// runs: a skip-count file recording the next step index, and a
// zstd-compressed gob encoding of the full WorkflowData snapshot. Writes
// land in a temp file and are renamed into place so a crash mid-write
// never leaves a corrupt checkpoint (§9 atomicity).
package checkpoint

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Paths returns the two sibling checkpoint file paths for prefix.
func Paths(prefix string) (skipPath, dataPath string) {
	return prefix + ".chk.skip", prefix + ".chk.data"
}

// Save snapshots skip (the number of steps to skip on resume) and state
// (gob-encoded by the caller's registered types) to prefix's checkpoint
// files, each written atomically via a temp-file-then-rename.
func Save(prefix string, skip int, state interface{}) error {
	skipPath, dataPath := Paths(prefix)

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}

	compressed, err := compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("checkpoint: compress: %w", err)
	}

	if err := writeAtomic(dataPath, compressed); err != nil {
		return fmt.Errorf("checkpoint: write data: %w", err)
	}
	if err := writeAtomic(skipPath, []byte(strconv.Itoa(skip))); err != nil {
		return fmt.Errorf("checkpoint: write skip: %w", err)
	}
	return nil
}

// Load reads a checkpoint back, decoding into state (a pointer, as
// gob.Decode requires). Returns (0, false, nil) if either sibling file is
// missing — per §4.9, both files must be present or the run starts
// fresh.
func Load(prefix string, state interface{}) (skip int, ok bool, err error) {
	skipPath, dataPath := Paths(prefix)

	skipRaw, err := os.ReadFile(skipPath)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("checkpoint: read skip: %w", err)
	}

	dataRaw, err := os.ReadFile(dataPath)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("checkpoint: read data: %w", err)
	}

	skip, err = strconv.Atoi(strings.TrimSpace(string(skipRaw)))
	if err != nil {
		return 0, false, fmt.Errorf("checkpoint: malformed skip file: %w", err)
	}

	decompressed, err := decompress(dataRaw)
	if err != nil {
		return 0, false, fmt.Errorf("checkpoint: decompress: %w", err)
	}

	dec := gob.NewDecoder(bytes.NewReader(decompressed))
	if err := dec.Decode(state); err != nil {
		return 0, false, fmt.Errorf("checkpoint: decode: %w", err)
	}
	return skip, true, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
