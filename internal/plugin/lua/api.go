package lua

import (
	"fmt"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sbp/internal/command"
	"github.com/dshills/sbp/internal/host"
	"github.com/dshills/sbp/internal/interact"
	"github.com/dshills/sbp/internal/rectangle"
	"github.com/dshills/sbp/internal/register"
)

// API is what the sbp table exposes. Nil fields leave the matching
// functions raising errors.
type API struct {
	Surface    host.Surface
	Store      *register.Store
	Registers  *interact.Controller
	Rectangles *rectangle.Editor
	Commands   *command.Registry
	Logger     host.Logger
}

// Install registers the sbp table in s.
func Install(s *State, api *API) {
	s.mu.Lock()
	defer s.mu.Unlock()

	L := s.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"text":       api.text,
		"selection":  api.selection,
		"select":     api.selectRegion,
		"rowcol":     api.rowcol,
		"text_point": api.textPoint,
		"run":        api.run,
		"log":        api.log,
	})
	L.SetField(mod, "registers", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get":      api.regGet,
		"store":    api.regStore,
		"contains": api.regContains,
		"keys":     api.regKeys,
		"capture":  api.regCapture,
		"insert":   api.regInsert,
	}))
	L.SetField(mod, "rect", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"delete": api.rectDelete,
		"insert": api.rectInsert,
		"text":   api.rectText,
	}))
	L.SetGlobal("sbp", mod)
}

func (a *API) surface(L *lua.LState) host.Surface {
	if a.Surface == nil {
		L.RaiseError("no surface available")
	}
	return a.Surface
}

func (a *API) store(L *lua.LState) *register.Store {
	if a.Store == nil {
		L.RaiseError("no register store available")
	}
	return a.Store
}

// text() -> string
func (a *API) text(L *lua.LState) int {
	s := a.surface(L)
	L.Push(lua.LString(s.Substr(host.NewRegion(0, s.TextPoint(math.MaxInt32, math.MaxInt32)))))
	return 1
}

// selection() -> anchor, head
func (a *API) selection(L *lua.LState) int {
	sels := a.surface(L).Selections()
	if len(sels) == 0 {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(sels[0].A))
	L.Push(lua.LNumber(sels[0].B))
	return 2
}

// select(a [, b])
func (a *API) selectRegion(L *lua.LState) int {
	anchor := L.CheckInt64(1)
	head := L.OptInt64(2, anchor)
	a.surface(L).SetSelections(host.NewRegion(anchor, head))
	return 0
}

// rowcol(offset) -> row, col
func (a *API) rowcol(L *lua.LState) int {
	row, col := a.surface(L).RowCol(L.CheckInt64(1))
	L.Push(lua.LNumber(row))
	L.Push(lua.LNumber(col))
	return 2
}

// text_point(row, col) -> offset
func (a *API) textPoint(L *lua.LState) int {
	L.Push(lua.LNumber(a.surface(L).TextPoint(L.CheckInt(1), L.CheckInt(2))))
	return 1
}

// run(id [, args])
func (a *API) run(L *lua.LState) int {
	if a.Commands == nil {
		L.RaiseError("no command registry available")
	}
	id := L.CheckString(1)
	args, err := tableToArgs(L.OptTable(2, nil))
	if err != nil {
		L.ArgError(2, err.Error())
	}
	if err := a.Commands.Run(id, args); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// log(...) joins its arguments with spaces, like print.
func (a *API) log(L *lua.LState) int {
	if a.Logger == nil {
		return 0
	}
	L.CheckAny(1)
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	a.Logger.Info("lua: %s", strings.Join(parts, " "))
	return 0
}

// registers.get(name) -> string
func (a *API) regGet(L *lua.LState) int {
	L.Push(lua.LString(a.store(L).Get(L.CheckString(1))))
	return 1
}

// registers.store(name, value)
func (a *API) regStore(L *lua.LState) int {
	a.store(L).Store(L.CheckString(1), L.CheckString(2))
	return 0
}

// registers.contains(name) -> bool
func (a *API) regContains(L *lua.LState) int {
	L.Push(lua.LBool(a.store(L).Contains(L.CheckString(1))))
	return 1
}

// registers.keys() -> {names}
func (a *API) regKeys(L *lua.LState) int {
	t := L.NewTable()
	for _, k := range a.store(L).Keys() {
		t.Append(lua.LString(k))
	}
	L.Push(t)
	return 1
}

// registers.capture(name) -> outcome
func (a *API) regCapture(L *lua.LState) int {
	if a.Registers == nil {
		L.RaiseError("no register controller available")
	}
	L.Push(lua.LString(a.Registers.StoreSelection(L.CheckString(1)).String()))
	return 1
}

// registers.insert(name) -> outcome
func (a *API) regInsert(L *lua.LState) int {
	if a.Registers == nil {
		L.RaiseError("no register controller available")
	}
	L.Push(lua.LString(a.Registers.InsertRegister(L.CheckString(1)).String()))
	return 1
}

func (a *API) rectangles(L *lua.LState) *rectangle.Editor {
	if a.Rectangles == nil {
		L.RaiseError("no rectangle editor available")
	}
	return a.Rectangles
}

// rect.delete() -> bool
func (a *API) rectDelete(L *lua.LState) int {
	L.Push(lua.LBool(a.rectangles(L).Delete()))
	return 1
}

// rect.insert(content) -> bool
func (a *API) rectInsert(L *lua.LState) int {
	L.Push(lua.LBool(a.rectangles(L).Insert(L.CheckString(1))))
	return 1
}

// rect.text() -> {rows}
func (a *API) rectText(L *lua.LState) int {
	t := L.NewTable()
	for _, row := range a.rectangles(L).Extract() {
		t.Append(lua.LString(row))
	}
	L.Push(t)
	return 1
}

// tableToArgs converts a flat Lua table with string keys into command
// arguments.
func tableToArgs(t *lua.LTable) (command.Args, error) {
	if t == nil {
		return nil, nil
	}
	args := command.Args{}
	var err error
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			err = fmt.Errorf("argument keys must be strings, got %s", k.Type())
			return
		}
		switch v := v.(type) {
		case lua.LString:
			args[string(key)] = string(v)
		case lua.LBool:
			args[string(key)] = bool(v)
		case lua.LNumber:
			f := float64(v)
			if f == float64(int64(f)) {
				args[string(key)] = int64(f)
			} else {
				args[string(key)] = f
			}
		default:
			err = fmt.Errorf("argument %q has unsupported type %s", string(key), v.Type())
		}
	})
	return args, err
}
