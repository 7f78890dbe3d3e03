package layer

import "gopkg.in/yaml.v3"

// GobEncode/GobDecode let SelectMany, SelectOne and Layer flow through
// checkpoint's gob-encoded WorkflowData snapshots despite their
// unexported backing fields — all three delegate to the YAML forms
// already defined for workflow/step/substituent files.

func (s SelectMany) GobEncode() ([]byte, error) { return yaml.Marshal(s) }

func (s *SelectMany) GobDecode(data []byte) error { return yaml.Unmarshal(data, s) }

func (s SelectOne) GobEncode() ([]byte, error) { return yaml.Marshal(s) }

func (s *SelectOne) GobDecode(data []byte) error { return yaml.Unmarshal(data, s) }

func (l Layer) GobEncode() ([]byte, error) { return yaml.Marshal(l) }

func (l *Layer) GobDecode(data []byte) error { return yaml.Unmarshal(data, l) }
