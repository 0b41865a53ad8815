// Package interact drives the modal register prompts.
//
// A Controller runs one prompt at a time through an explicit state
// machine:
//
//	Idle --BeginCapture/BeginInsert--> PromptOpen
//	PromptOpen --change/confirm--> Captured | Inserted | Skipped
//	PromptOpen --cancel--> Cancelled
//
// Every resolution returns the controller to Idle; the outcome of the last
// interaction is available from Outcome.
package interact

import (
	"github.com/dshills/sbp/internal/host"
	"github.com/dshills/sbp/internal/register"
)

// Default prompt labels.
const (
	DefaultCaptureLabel = "Store into register:"
	DefaultInsertLabel  = "Insert from register:"
)

// State is the controller's position in the prompt state machine.
type State uint8

const (
	// StateIdle means no prompt is open.
	StateIdle State = iota
	// StatePromptOpen means a register-name prompt is waiting for input.
	StatePromptOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePromptOpen:
		return "prompt-open"
	default:
		return "unknown"
	}
}

// Outcome is how the last interaction resolved.
type Outcome uint8

const (
	// OutcomeNone means no interaction has resolved yet.
	OutcomeNone Outcome = iota
	// OutcomeCaptured means a selection was stored into a register.
	OutcomeCaptured
	// OutcomeInserted means a register was inserted into the buffer.
	OutcomeInserted
	// OutcomeCancelled means the user dismissed the prompt.
	OutcomeCancelled
	// OutcomeSkipped means a precondition failed and nothing happened.
	OutcomeSkipped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCaptured:
		return "captured"
	case OutcomeInserted:
		return "inserted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Flow identifies which interaction a prompt belongs to.
type Flow uint8

const (
	FlowNone Flow = iota
	FlowCapture
	FlowInsert
)

// String returns the flow name.
func (f Flow) String() string {
	switch f {
	case FlowCapture:
		return "capture"
	case FlowInsert:
		return "insert"
	default:
		return "none"
	}
}

// Controller mediates between a surface, its prompter and the register
// store. A Controller belongs to one view.
type Controller struct {
	store    *register.Store
	surface  host.Surface
	prompter host.Prompter
	logger   host.Logger

	captureLabel     string
	insertLabel      string
	captureOnConfirm bool

	state   State
	flow    Flow
	prompt  host.PromptID
	outcome Outcome
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l host.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLabels overrides the capture and insert prompt labels. Empty
// values keep the defaults.
func WithLabels(capture, insert string) Option {
	return func(c *Controller) {
		c.SetLabels(capture, insert)
	}
}

// WithCaptureOnConfirm makes capture wait for the prompt to be confirmed
// instead of storing on the first edit to the register name.
func WithCaptureOnConfirm(enabled bool) Option {
	return func(c *Controller) {
		c.captureOnConfirm = enabled
	}
}

// NewController creates a controller.
func NewController(store *register.Store, surface host.Surface, prompter host.Prompter, opts ...Option) *Controller {
	c := &Controller{
		store:        store,
		surface:      surface,
		prompter:     prompter,
		logger:       host.NopLogger{},
		captureLabel: DefaultCaptureLabel,
		insertLabel:  DefaultInsertLabel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLabels changes the prompt labels. Empty values are ignored.
func (c *Controller) SetLabels(capture, insert string) {
	if capture != "" {
		c.captureLabel = capture
	}
	if insert != "" {
		c.insertLabel = insert
	}
}

// SetCaptureOnConfirm switches the capture policy.
func (c *Controller) SetCaptureOnConfirm(enabled bool) {
	c.captureOnConfirm = enabled
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Flow returns the flow of the open prompt, or FlowNone when idle.
func (c *Controller) Flow() Flow {
	return c.flow
}

// Outcome returns how the last interaction resolved.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// Store returns the register store.
func (c *Controller) Store() *register.Store {
	return c.store
}

// BeginCapture opens the register-name prompt for storing the current
// selection.
func (c *Controller) BeginCapture() host.PromptID {
	c.abandon()

	handlers := host.PromptHandlers{
		OnCancel: c.onCancel(FlowCapture),
	}
	if c.captureOnConfirm {
		handlers.OnConfirm = c.onCaptureInput
	} else {
		handlers.OnChange = c.onCaptureInput
		handlers.OnConfirm = func(string) {}
	}
	return c.open(FlowCapture, c.captureLabel, handlers)
}

// BeginInsert opens the register-name prompt for inserting a register.
func (c *Controller) BeginInsert() host.PromptID {
	c.abandon()

	return c.open(FlowInsert, c.insertLabel, host.PromptHandlers{
		OnConfirm: c.onInsertConfirm,
		OnCancel:  c.onCancel(FlowInsert),
	})
}

// Cancel dismisses an open prompt as if the user had cancelled it.
func (c *Controller) Cancel() {
	if c.state != StatePromptOpen {
		return
	}
	c.prompter.ClosePrompt(c.prompt)
	c.resolve(OutcomeCancelled)
}

func (c *Controller) open(flow Flow, label string, handlers host.PromptHandlers) host.PromptID {
	c.state = StatePromptOpen
	c.flow = flow
	c.prompt = ""
	id := c.prompter.OpenPrompt(label, "", handlers)
	// A prompter may resolve synchronously inside OpenPrompt.
	if c.state == StatePromptOpen && c.flow == flow {
		c.prompt = id
	}
	c.logger.Debug("register prompt opened: flow=%s id=%s", flow, id)
	return id
}

// abandon closes a prompt left open by a previous interaction.
func (c *Controller) abandon() {
	if c.state == StatePromptOpen {
		c.prompter.ClosePrompt(c.prompt)
		c.resolve(OutcomeCancelled)
	}
}

func (c *Controller) resolve(o Outcome) {
	c.logger.Debug("register prompt resolved: flow=%s outcome=%s", c.flow, o)
	c.state = StateIdle
	c.flow = FlowNone
	c.prompt = ""
	c.outcome = o
}

func (c *Controller) onCancel(flow Flow) func() {
	return func() {
		if c.state != StatePromptOpen || c.flow != flow {
			return
		}
		c.resolve(OutcomeCancelled)
	}
}

// onCaptureInput treats the prompt text as the complete register name.
// With the default policy it runs on the first edit, so only single
// character names are reachable.
func (c *Controller) onCaptureInput(key string) {
	if c.state != StatePromptOpen || c.flow != FlowCapture {
		return
	}
	c.prompter.ClosePrompt(c.prompt)
	c.resolve(c.StoreSelection(key))
}

func (c *Controller) onInsertConfirm(key string) {
	if c.state != StatePromptOpen || c.flow != FlowInsert {
		return
	}
	c.prompter.ClosePrompt(c.prompt)
	c.resolve(c.InsertRegister(key))
}

// StoreSelection stores the text of the only selection into register key
// and cancels the mark. It does nothing unless exactly one selection
// exists.
func (c *Controller) StoreSelection(key string) Outcome {
	sels := c.surface.Selections()
	if len(sels) != 1 {
		c.logger.Debug("register capture skipped: %d selections", len(sels))
		return OutcomeSkipped
	}

	c.store.Store(key, c.surface.Substr(sels[0]))
	c.surface.CancelMark()
	c.logger.Info("stored %d bytes into register %q", sels[0].Len(), key)
	return OutcomeCaptured
}

// InsertRegister replaces the only selection with the content of register
// key as one undoable edit and leaves the cursor after the inserted text.
// It does nothing when the register was never stored or the selection
// count is not one, and leaves the selection alone when the surface
// refuses the edit.
func (c *Controller) InsertRegister(key string) Outcome {
	sels := c.surface.Selections()
	if len(sels) != 1 {
		c.logger.Debug("register insert skipped: %d selections", len(sels))
		return OutcomeSkipped
	}
	if !c.store.Contains(key) {
		c.logger.Debug("register insert skipped: register %q is not set", key)
		return OutcomeSkipped
	}

	text := c.store.Get(key)
	begin := sels[0].Begin()
	var err error
	c.surface.Edit("insert register", func() {
		c.surface.Replace(sels[0], text)
		if r, ok := c.surface.(host.EditReporter); ok {
			err = r.EditErr()
		}
	})
	if err != nil {
		c.logger.Warn("register insert failed: %v", err)
		return OutcomeSkipped
	}
	c.surface.SetSelections(host.Point(begin + int64(len(text))))
	c.logger.Info("inserted register %q", key)
	return OutcomeInserted
}
