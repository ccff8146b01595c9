// File: script.go
// Title: Operation Script Model and Parser
// Description: Defines the YAML operation script format used to drive a
//              String through a sequence of operations with expectations,
//              and parses one or more scripts from a file or byte slice.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-09
//
// Change History:
// - 2025-08-05 v0.1.0: Initial implementation
// - 2025-08-06 v0.1.1: Multi-document files and per-script limits
// - 2025-08-09 v0.1.2: Validation errors name unnamed scripts by document

package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/safestr/pkg/safestr"
)

// Script is a named sequence of steps run against one String
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Initial content; when absent the String starts empty with Capacity
	Initial  *string `yaml:"initial"`
	Capacity int     `yaml:"capacity"`

	// Limit caps the String's buffer for this script; 0 inherits the runner's
	Limit int `yaml:"limit"`

	Steps []Step `yaml:"steps"`
}

// Step is a single operation and its expected outcome.
// Which fields an operation reads depends on the operation.
type Step struct {
	Op string `yaml:"op"`

	Index  int     `yaml:"index"`
	Count  int     `yaml:"count"`
	Length *int    `yaml:"length"`
	Start  *int    `yaml:"start"`
	Size   int     `yaml:"size"`
	Text   *string `yaml:"text"`
	Char   string  `yaml:"char"`
	Old    string  `yaml:"old"`
	New    string  `yaml:"new"`

	Args []interface{} `yaml:"args"`

	// Expectations
	Want     string  `yaml:"want"`
	WantPos  *int    `yaml:"want_pos"`
	WantCmp  *int    `yaml:"want_cmp"`
	WantBool *bool   `yaml:"want_bool"`
	WantText *string `yaml:"want_text"`
	Capacity *int    `yaml:"capacity"`

	wantCode safestr.Code
}

// WantCode returns the expected result code of the step
func (s *Step) WantCode() safestr.Code {
	return s.wantCode
}

// LoadFile reads every script in a YAML file. Scripts without a name are
// named after the file.
func LoadFile(path string) ([]*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	scripts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, sc := range scripts {
		if sc.Name == "" {
			if len(scripts) == 1 {
				sc.Name = base
			} else {
				sc.Name = fmt.Sprintf("%s#%d", base, i+1)
			}
		}
	}
	return scripts, nil
}

// Parse decodes one or more YAML documents into scripts and validates them
func Parse(data []byte) ([]*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scripts []*Script
	for {
		var sc Script
		err := dec.Decode(&sc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse script: %w", err)
		}
		if err := sc.validate(len(scripts) + 1); err != nil {
			return nil, err
		}
		scripts = append(scripts, &sc)
	}

	if len(scripts) == 0 {
		return nil, errors.New("no scripts found")
	}
	return scripts, nil
}

// ref names the script in errors: its name, or its document number when unnamed
func (sc *Script) ref(doc int) string {
	if sc.Name != "" {
		return fmt.Sprintf("%q", sc.Name)
	}
	return fmt.Sprintf("#%d", doc)
}

// validate checks the structure of the script and resolves expected codes.
// doc is the 1-based position of the script in its source.
func (sc *Script) validate(doc int) error {
	ref := sc.ref(doc)
	if len(sc.Steps) == 0 {
		return fmt.Errorf("script %s has no steps", ref)
	}
	if sc.Capacity < 0 || sc.Limit < 0 {
		return fmt.Errorf("script %s: capacity and limit must not be negative", ref)
	}

	for i := range sc.Steps {
		st := &sc.Steps[i]
		st.Op = normalizeOp(st.Op)
		if st.Op == "" {
			return fmt.Errorf("script %s step %d: missing op", ref, i+1)
		}

		st.wantCode = safestr.Success
		if st.Want != "" {
			code, err := safestr.ParseCode(st.Want)
			if err != nil {
				return fmt.Errorf("script %s step %d: %w", ref, i+1, err)
			}
			st.wantCode = code
		}
	}
	return nil
}

// normalizeOp folds case and accepts dashes for underscores
func normalizeOp(op string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(op)), "-", "_")
}

// char returns the single byte held by a char-like field
func char(field, value string) (byte, error) {
	if len(value) != 1 {
		return 0, fmt.Errorf("%s must be exactly one byte, got %q", field, value)
	}
	return value[0], nil
}

// source returns the step text as a (buffer, length) pair. An absent text is
// a nil buffer; length defaults to the text length.
func (s *Step) source() ([]byte, int) {
	var buf []byte
	if s.Text != nil {
		buf = []byte(*s.Text)
	}
	length := len(buf)
	if s.Length != nil {
		length = *s.Length
	}
	return buf, length
}

// cstr returns the step text as a zero-terminated source, nil when absent
func (s *Step) cstr() safestr.CStr {
	if s.Text == nil {
		return nil
	}
	if *s.Text == "" {
		return safestr.CStr{}
	}
	return safestr.CStr(*s.Text)
}

// other returns the step text as a String holding every byte, nil when absent
func (s *Step) other() *safestr.String {
	if s.Text == nil {
		return nil
	}
	return safestr.NewFromBuffer([]byte(*s.Text), len(*s.Text))
}

// start returns the start position, or def when none is given
func (s *Step) start(def int) int {
	if s.Start == nil {
		return def
	}
	return *s.Start
}
