// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// DefaultRegistry holds every bundled utility. Each utility file registers
// itself from init.
var DefaultRegistry = NewRegistry()

// Registry maps utility names to implementations. It is safe for concurrent
// use; registration normally happens once at startup.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// Register adds cmd under cmd.Name(). An empty or duplicate name is a
// programming error and panics.
func (r *Registry) Register(cmd Command) {
	name := cmd.Name()
	if name == "" {
		panic("coreutils: Register called with an unnamed command")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.commands[name]; dup {
		panic(fmt.Sprintf("coreutils: Register called twice for %q", name))
	}
	r.commands[name] = cmd
}

func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	cmd, ok := r.commands[name]
	r.mu.RUnlock()
	return cmd, ok
}

// Names lists the registered utilities alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.commands))
}

// Run dispatches to the utility called name. args follows the Command.Run
// convention: args[0] is the utility name.
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}
	return cmd.Run(ctx, args)
}

// RegisterDefault adds cmd to DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}
