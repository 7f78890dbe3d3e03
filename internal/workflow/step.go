package workflow

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step is one entry in a workflow's step list: run's runner executes
// over the window named by from (or the current cursor if from is
// empty), and the resulting window is installed under name if set.
type Step struct {
	From string
	Name string
	Run  Runner
}

type stepYAML struct {
	Load *string `yaml:"load,omitempty"`
	From string  `yaml:"from,omitempty"`
	Name string  `yaml:"name,omitempty"`
	Run  *Runner `yaml:"run,omitempty"`
}

// UnmarshalYAML parses either an inline {from?, name?, run} step or a
// {load: ref} reference, resolving the reference immediately.
func (s *Step) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form stepYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	if form.Load != nil {
		loaded, err := LoadStepFile(*form.Load)
		if err != nil {
			return err
		}
		*s = loaded
		return nil
	}
	if form.Run == nil {
		return fmt.Errorf("workflow: step has neither load nor run")
	}
	*s = Step{From: form.From, Name: form.Name, Run: *form.Run}
	return nil
}

// LoadStepFile resolves ref — "path" or "path?KEY=value&..." — into a
// Step. Absolute paths are used verbatim; relative paths resolve against
// the current working directory. When the file's stem ends with
// "template", literal "{{ KEY }}" occurrences are substituted from the
// query string before the YAML is parsed.
func LoadStepFile(ref string) (Step, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return Step{}, fmt.Errorf("workflow: malformed load reference %q: %w", ref, err)
	}

	path := parsed.Path
	if !filepath.IsAbs(path) {
		path, err = filepath.Abs(path)
		if err != nil {
			return Step{}, fmt.Errorf("workflow: %q: %w", ref, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Step{}, fmt.Errorf("workflow: loading step file %q: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasSuffix(stem, "template") {
		text := string(data)
		for key, values := range parsed.Query() {
			if len(values) == 0 {
				continue
			}
			text = strings.ReplaceAll(text, "{{ "+key+" }}", values[0])
		}
		data = []byte(text)
	}

	var step Step
	if err := yaml.Unmarshal(data, &step); err != nil {
		return Step{}, fmt.Errorf("workflow: parsing step file %q: %w", path, err)
	}
	return step, nil
}
