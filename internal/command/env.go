package command

import (
	"github.com/dshills/sbp/internal/host"
	"github.com/dshills/sbp/internal/interact"
	"github.com/dshills/sbp/internal/rectangle"
)

// Env is what commands act on: one view's surface and the engines bound
// to it.
type Env struct {
	Surface    host.Surface
	Viewport   host.Viewport
	Registers  *interact.Controller
	Rectangles *rectangle.Editor
	Logger     host.Logger
}

func (e *Env) logger() host.Logger {
	if e.Logger == nil {
		return host.NopLogger{}
	}
	return e.Logger
}
