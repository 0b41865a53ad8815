package command

import (
	"fmt"

	"github.com/dshills/sbp/internal/host"
)

// Built-in command IDs.
const (
	RegisterStore   = "sbp_register_store"
	RegisterInsert  = "sbp_register_insert"
	RectangleDelete = "sbp_rectangle_delete"
	RectangleInsert = "sbp_rectangle_insert"
	OpenLine        = "sbp_open_line"
	RecenterInView  = "sbp_recenter_in_view"
	CancelMark      = "sbp_cancel_mark"
)

// RegisterBuiltins adds the built-in commands to r.
func RegisterBuiltins(r *Registry) error {
	return r.RegisterAll(Builtins())
}

// Builtins returns fresh definitions of the built-in commands.
func Builtins() []*Command {
	return []*Command{
		{
			ID:          RegisterStore,
			Title:       "Copy to Register",
			Description: "Store the selection into a named register",
			Keybinding:  "C-x r s",
			Args: []Arg{
				{Name: "register", Type: ArgString, Description: "register name; prompts when omitted"},
			},
			Handler: runRegisterStore,
		},
		{
			ID:          RegisterInsert,
			Title:       "Insert Register",
			Description: "Replace the selection with a register's content",
			Keybinding:  "C-x r i",
			Args: []Arg{
				{Name: "register", Type: ArgString, Description: "register name; prompts when omitted"},
			},
			Handler: runRegisterInsert,
		},
		{
			ID:          RectangleDelete,
			Title:       "Delete Rectangle",
			Description: "Delete the column range of the selection on every row it spans",
			Keybinding:  "C-x r d",
			Handler:     runRectangleDelete,
		},
		{
			ID:          RectangleInsert,
			Title:       "String Rectangle",
			Description: "Replace the rectangle of the selection with text on every row",
			Keybinding:  "C-x r t",
			Args: []Arg{
				{Name: "content", Type: ArgString, Description: "replacement text; prompts when omitted"},
			},
			Handler: runRectangleInsert,
		},
		{
			ID:          OpenLine,
			Title:       "Open Line",
			Description: "Insert a newline after the cursor without moving it",
			Keybinding:  "C-o",
			Handler:     runOpenLine,
		},
		{
			ID:          RecenterInView,
			Title:       "Recenter",
			Description: "Scroll so the cursor line is centered",
			Keybinding:  "C-l",
			Handler:     runRecenter,
		},
		{
			ID:          CancelMark,
			Title:       "Cancel Mark",
			Description: "Deactivate the mark and collapse the selection",
			Keybinding:  "C-g",
			Handler:     runCancelMark,
		},
	}
}

func requireSurface(env *Env) error {
	if env == nil || env.Surface == nil {
		return fmt.Errorf("%w: no surface", ErrInvalidCommand)
	}
	return nil
}

func runRegisterStore(env *Env, args Args) error {
	if env == nil || env.Registers == nil {
		return fmt.Errorf("%w: registers unavailable", ErrInvalidCommand)
	}
	if key, ok := args.String("register"); ok {
		env.Registers.StoreSelection(key)
		return nil
	}
	env.Registers.BeginCapture()
	return nil
}

func runRegisterInsert(env *Env, args Args) error {
	if env == nil || env.Registers == nil {
		return fmt.Errorf("%w: registers unavailable", ErrInvalidCommand)
	}
	if key, ok := args.String("register"); ok {
		env.Registers.InsertRegister(key)
		return nil
	}
	env.Registers.BeginInsert()
	return nil
}

func runRectangleDelete(env *Env, _ Args) error {
	if env == nil || env.Rectangles == nil {
		return fmt.Errorf("%w: rectangles unavailable", ErrInvalidCommand)
	}
	env.Rectangles.Delete()
	return nil
}

func runRectangleInsert(env *Env, args Args) error {
	if env == nil || env.Rectangles == nil {
		return fmt.Errorf("%w: rectangles unavailable", ErrInvalidCommand)
	}
	if content, ok := args.String("content"); ok {
		env.Rectangles.Insert(content)
		return nil
	}
	env.Rectangles.BeginInsert()
	return nil
}

// runOpenLine inserts a newline at the end of the primary selection and
// leaves the cursor in front of it.
func runOpenLine(env *Env, _ Args) error {
	if err := requireSurface(env); err != nil {
		return err
	}
	sels := env.Surface.Selections()
	if len(sels) == 0 {
		return nil
	}

	point := sels[0].End()
	env.Surface.Edit("open line", func() {
		env.Surface.Insert(point, "\n")
	})
	env.Surface.SetSelections(host.Point(point))
	return nil
}

func runRecenter(env *Env, _ Args) error {
	if err := requireSurface(env); err != nil {
		return err
	}
	if env.Viewport == nil {
		env.logger().Debug("recenter: host has no viewport")
		return nil
	}
	sels := env.Surface.Selections()
	if len(sels) == 0 {
		return nil
	}
	env.Viewport.ShowAtCenter(sels[0].B)
	return nil
}

func runCancelMark(env *Env, _ Args) error {
	if err := requireSurface(env); err != nil {
		return err
	}
	env.Surface.CancelMark()
	return nil
}
