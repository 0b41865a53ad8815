package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds commands and runs them against one Env.
type Registry struct {
	mu       sync.RWMutex
	env      *Env
	commands map[string]*Command
	history  *History
}

// NewRegistry creates an empty registry bound to env.
func NewRegistry(env *Env) *Registry {
	return &Registry{
		env:      env,
		commands: make(map[string]*Command),
		history:  NewHistory(50),
	}
}

// Env returns the environment commands run against.
func (r *Registry) Env() *Env {
	return r.env
}

// Register adds a command. A command with the same ID is replaced.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	if cmd.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidCommand)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %q has no handler", ErrInvalidCommand, cmd.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
	return nil
}

// RegisterAll adds multiple commands.
func (r *Registry) RegisterAll(commands []*Command) error {
	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes a command.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.commands[id]
	delete(r.commands, id)
	if exists {
		r.history.Remove(id)
	}
	return exists
}

// Get retrieves a command by ID.
func (r *Registry) Get(id string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[id]
}

// Has checks if a command exists.
func (r *Registry) Has(id string) bool {
	return r.Get(id) != nil
}

// All returns every command sorted by ID.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Run executes a command by ID. History is only updated after successful
// execution.
func (r *Registry) Run(id string, args Args) error {
	cmd := r.Get(id)
	if cmd == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}

	if err := cmd.Execute(r.env, args); err != nil {
		return err
	}
	r.history.Add(id)
	return nil
}

// Search finds commands matching query, best first. Recently run commands
// rank higher. An empty query lists recent commands first, then the rest
// by ID.
func (r *Registry) Search(query string, limit int) []SearchResult {
	results := search(r.All(), query)

	for i := range results {
		if pos := r.history.Position(results[i].Command.ID); pos >= 0 {
			results[i].Score += 100 - pos
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Command.ID < results[j].Command.ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Recent returns IDs of recently run commands, most recent first.
func (r *Registry) Recent(limit int) []string {
	return r.history.Recent(limit)
}
