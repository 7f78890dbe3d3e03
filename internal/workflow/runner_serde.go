package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/xyzio"
)

type substituentRunnerYAML struct {
	Entry       layer.SelectOne `yaml:"entry"`
	Exit        layer.SelectOne `yaml:"exit"`
	FilePattern string          `yaml:"file_pattern"`
}

type functionRunnerYAML struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

type outputXYZRunnerYAML struct {
	Prefix     string `yaml:"prefix,omitempty"`
	Suffix     string `yaml:"suffix,omitempty"`
	PathPrefix string `yaml:"path_prefix"`
	Extension  string `yaml:"extension"`
}

type runnerYAML struct {
	AddLayers   []layer.Layer          `yaml:"add_layers,omitempty"`
	Substituent *substituentRunnerYAML `yaml:"substituent,omitempty"`
	Function    *functionRunnerYAML    `yaml:"function,omitempty"`
	OutputXYZ   *outputXYZRunnerYAML   `yaml:"output_xyz,omitempty"`
}

// UnmarshalYAML parses one of {add_layers: [...]}, {substituent: {...}},
// {function: {...}}, {output_xyz: {...}}.
func (r *Runner) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form runnerYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	switch {
	case form.AddLayers != nil:
		*r = Runner{Kind: RunnerAddLayers, AddLayersLayers: form.AddLayers}
	case form.Substituent != nil:
		*r = Runner{
			Kind:                   RunnerSubstituent,
			SubstituentEntry:       form.Substituent.Entry,
			SubstituentExit:        form.Substituent.Exit,
			SubstituentFilePattern: form.Substituent.FilePattern,
		}
	case form.Function != nil:
		*r = Runner{
			Kind:            RunnerFunction,
			FunctionCommand: form.Function.Command,
			FunctionArgs:    form.Function.Args,
		}
	case form.OutputXYZ != nil:
		*r = Runner{
			Kind: RunnerOutputXYZ,
			OutputXYZOptions: xyzio.Options{
				Prefix:     form.OutputXYZ.Prefix,
				Suffix:     form.OutputXYZ.Suffix,
				PathPrefix: form.OutputXYZ.PathPrefix,
				Extension:  form.OutputXYZ.Extension,
			},
		}
	default:
		return fmt.Errorf("workflow: unrecognized Runner form")
	}
	return nil
}

// MarshalYAML renders the runner back to its YAML form.
func (r Runner) MarshalYAML() (interface{}, error) {
	var form runnerYAML
	switch r.Kind {
	case RunnerAddLayers:
		form.AddLayers = r.AddLayersLayers
	case RunnerSubstituent:
		form.Substituent = &substituentRunnerYAML{
			Entry:       r.SubstituentEntry,
			Exit:        r.SubstituentExit,
			FilePattern: r.SubstituentFilePattern,
		}
	case RunnerFunction:
		form.Function = &functionRunnerYAML{Command: r.FunctionCommand, Args: r.FunctionArgs}
	case RunnerOutputXYZ:
		form.OutputXYZ = &outputXYZRunnerYAML{
			Prefix:     r.OutputXYZOptions.Prefix,
			Suffix:     r.OutputXYZOptions.Suffix,
			PathPrefix: r.OutputXYZOptions.PathPrefix,
			Extension:  r.OutputXYZOptions.Extension,
		}
	default:
		return nil, fmt.Errorf("workflow: malformed Runner")
	}
	return form, nil
}

// MarshalJSON renders a RunnerOutput per the external-process protocol:
// {"Serial": [[id,...],...]} | {"Named": {name: [[id,...],...]}} | "None".
func (r RunnerOutput) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case OutputSerial:
		return json.Marshal(struct {
			Serial [][]int `json:"Serial"`
		}{r.SerialPaths})
	case OutputNamed:
		return json.Marshal(struct {
			Named map[string][][]int `json:"Named"`
		}{r.NamedPaths})
	case OutputNone:
		return json.Marshal("None")
	default:
		return nil, fmt.Errorf("workflow: malformed RunnerOutput")
	}
}

// UnmarshalJSON parses the RunnerOutput wire form.
func (r *RunnerOutput) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "None" {
			*r = RunnerOutput{Kind: OutputNone}
			return nil
		}
		return fmt.Errorf("workflow: unrecognized RunnerOutput string %q", asString)
	}

	var obj struct {
		Serial [][]int            `json:"Serial"`
		Named  map[string][][]int `json:"Named"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Serial != nil:
		*r = RunnerOutput{Kind: OutputSerial, SerialPaths: obj.Serial}
	case obj.Named != nil:
		*r = RunnerOutput{Kind: OutputNamed, NamedPaths: obj.Named}
	default:
		return fmt.Errorf("workflow: malformed RunnerOutput")
	}
	return nil
}
