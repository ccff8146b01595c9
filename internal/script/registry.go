// File: registry.go
// Title: Operation Registry
// Description: Maps script operation names to their handlers. The registry
//              is filled with every String operation at construction time
//              and can be extended with custom operations.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-05
//
// Change History:
// - 2025-08-05 v0.1.0: Initial implementation

package script

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/msto63/safestr/pkg/safestr"
)

// Outcome is what a handler observed when running a step
type Outcome struct {
	Code safestr.Code
	Err  error

	Pos  *int
	Cmp  *int
	Bool *bool
	Text *string

	// Mismatches are failures detected by the handler itself (expect steps)
	Mismatches []string
}

// State is the mutable run state handed to handlers
type State struct {
	Str     *safestr.String
	Options []safestr.Option
}

// Handler runs one step. A returned error is a script error (malformed
// step), not an operation failure; those go into Outcome.Code.
type Handler func(st *State, step *Step) (Outcome, error)

// OpDefinition describes a script operation
type OpDefinition struct {
	Name        string
	Description string
	Fields      []string
	Handler     Handler
}

// Registry holds the available operations
type Registry struct {
	ops   map[string]*OpDefinition
	mutex sync.RWMutex
}

// NewRegistry creates a registry holding every built-in operation
func NewRegistry() (*Registry, error) {
	r := &Registry{ops: make(map[string]*OpDefinition)}
	for _, def := range builtinOps() {
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register builtin operation: %w", err)
		}
	}
	return r, nil
}

// Register adds an operation. Names are normalized to snake_case.
func (r *Registry) Register(def *OpDefinition) error {
	if def == nil {
		return errors.New("operation definition cannot be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		return errors.New("operation name cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("operation %s has no handler", def.Name)
	}

	name := normalizeOp(def.Name)
	def.Name = name

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("operation %s already registered", name)
	}
	r.ops[name] = def
	return nil
}

// Lookup returns the operation registered under name
func (r *Registry) Lookup(name string) (*OpDefinition, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	def, ok := r.ops[normalizeOp(name)]
	return def, ok
}

// Names returns the sorted operation names
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
