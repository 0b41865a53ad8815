package command

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Errors returned by command operations.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgType defines the type of a command argument.
type ArgType uint8

const (
	// ArgString is a string argument.
	ArgString ArgType = iota

	// ArgNumber is a numeric argument (int or float).
	ArgNumber

	// ArgBoolean is a boolean argument.
	ArgBoolean
)

// String returns a string representation of the argument type.
func (t ArgType) String() string {
	switch t {
	case ArgString:
		return "string"
	case ArgNumber:
		return "number"
	case ArgBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Arg defines a command argument.
type Arg struct {
	Name        string
	Type        ArgType
	Required    bool
	Description string
}

// Validate checks if a value is valid for this argument.
func (a *Arg) Validate(value any) error {
	if value == nil {
		if a.Required {
			return fmt.Errorf("%w: %q is required", ErrInvalidArgument, a.Name)
		}
		return nil
	}

	switch a.Type {
	case ArgString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %q must be a string", ErrInvalidArgument, a.Name)
		}
	case ArgNumber:
		switch value.(type) {
		case int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("%w: %q must be a number", ErrInvalidArgument, a.Name)
		}
	case ArgBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %q must be a boolean", ErrInvalidArgument, a.Name)
		}
	}
	return nil
}

// Args holds command arguments by name.
type Args map[string]any

// String returns the named string argument and whether it was given.
func (a Args) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Handler executes a command.
type Handler func(env *Env, args Args) error

// Command is a registered command.
type Command struct {
	// ID is the unique command identifier (e.g., "sbp_open_line").
	ID string

	// Title is the display name shown in pickers.
	Title string

	// Description provides additional context about the command.
	Description string

	// Keybinding shows the keyboard shortcut (for display only).
	Keybinding string

	// Args defines the command's arguments.
	Args []Arg

	// Handler executes the command.
	Handler Handler
}

// ValidateArgs validates args against the command's definition. Unknown
// arguments are rejected.
func (c *Command) ValidateArgs(args Args) error {
	known := make(map[string]bool, len(c.Args))
	for i := range c.Args {
		arg := &c.Args[i]
		known[arg.Name] = true
		if err := arg.Validate(args[arg.Name]); err != nil {
			return err
		}
	}
	for name := range args {
		if !known[name] {
			return fmt.Errorf("%w: unknown argument %q", ErrInvalidArgument, name)
		}
	}
	return nil
}

// Execute runs the command. The caller's args map is not modified.
func (c *Command) Execute(env *Env, args Args) error {
	if err := c.ValidateArgs(args); err != nil {
		return fmt.Errorf("command %q: %w", c.ID, err)
	}
	if c.Handler == nil {
		return fmt.Errorf("command %q has no handler: %w", c.ID, ErrInvalidCommand)
	}
	return c.Handler(env, maps.Clone(args))
}

// SearchText returns the text to use for fuzzy searching.
func (c *Command) SearchText() string {
	desc := strings.TrimSpace(c.Description)
	if desc == "" {
		return c.Title
	}
	return c.Title + " " + desc
}
