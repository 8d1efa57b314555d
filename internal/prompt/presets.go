package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
)

// Presets maps a preset name to a ready-to-use set of options.
type Presets map[string]Options

// LoadPresets reads named option sets from a YAML file of the form
//
//	code-review:
//	  code: true
//	  program_language: Go
//	  elegant_code: true
//
// Fields a preset leaves out keep their DefaultOptions value.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: load presets: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes presets from YAML bytes.
// Keys that do not name an option are rejected.
func ParsePresets(data []byte) (Presets, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prompt: parse presets: %w", err)
	}

	presets := make(Presets, len(raw))
	for name, node := range raw {
		opts, err := decodePreset(&node)
		if err != nil {
			return nil, fmt.Errorf("prompt: preset %q: %w", name, err)
		}
		presets[name] = opts
	}
	return presets, nil
}

// decodePreset decodes one preset over DefaultOptions. Node.Decode cannot
// reject unknown fields, so the node is re-encoded for a strict decoder.
func decodePreset(node *yaml.Node) (Options, error) {
	opts := DefaultOptions()

	body, err := yaml.Marshal(node)
	if err != nil {
		return Options{}, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(body))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Get returns a copy of the named preset.
func (p Presets) Get(name string) (Options, error) {
	opts, ok := p[name]
	if !ok {
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return opts, nil
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
