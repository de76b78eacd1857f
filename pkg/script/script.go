// Package script replays recorded annotation sessions.
//
// A script is a YAML document:
//
//	label: cat
//	events:
//	  - {type: down, x: 10, y: 10}
//	  - {type: move, x: 60, y: 40}
//	  - {type: up, x: 60, y: 40}
//	  - {type: label, label: dog}
//	  - {type: key, key: Backspace}
//
// Coordinates are client coordinates, exactly as a pointer device would
// report them.
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/menta2k/box-annotator/pkg/input"
)

// Step types
const (
	StepDown  = "down"
	StepMove  = "move"
	StepUp    = "up"
	StepKey   = "key"
	StepLabel = "label"
)

var stepTypes = []string{StepDown, StepMove, StepUp, StepKey, StepLabel}

// Step is one scripted event
type Step struct {
	Type   string  `yaml:"type"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Button string  `yaml:"button,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Label  string  `yaml:"label,omitempty"`
}

// Script is a recorded session
type Script struct {
	Label  string `yaml:"label,omitempty"`
	Events []Step `yaml:"events"`
}

// Parse reads a script and validates every step
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromFile reads a script file
func LoadFromFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks step types, buttons and required fields
func (s *Script) Validate() error {
	for i, st := range s.Events {
		typ := strings.ToLower(st.Type)
		if !lo.Contains(stepTypes, typ) {
			return fmt.Errorf("step %d: unknown type %q (want one of %s)", i, st.Type, strings.Join(stepTypes, ", "))
		}
		if _, err := parseButton(st.Button); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if typ == StepKey && st.Key == "" {
			return fmt.Errorf("step %d: key step needs a key", i)
		}
	}
	return nil
}

// Pointers returns the number of pointer steps
func (s *Script) Pointers() int {
	return lo.CountBy(s.Events, func(st Step) bool {
		typ := strings.ToLower(st.Type)
		return typ == StepDown || typ == StepMove || typ == StepUp
	})
}

func parseButton(name string) (input.Button, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return input.ButtonLeft, nil
	case "middle":
		return input.ButtonMiddle, nil
	case "right":
		return input.ButtonRight, nil
	}
	return input.ButtonNone, fmt.Errorf("unknown button %q", name)
}
