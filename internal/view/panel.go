package view

import (
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/sbp/internal/host"
)

// Panel is a single-line input prompt. It implements host.Prompter.
type Panel struct {
	mu       sync.Mutex
	id       host.PromptID
	label    string
	text     string
	handlers host.PromptHandlers

	// onUpdate is called after every state change, for redraws.
	onUpdate func()
}

var _ host.Prompter = (*Panel)(nil)

// NewPanel creates a closed panel.
func NewPanel() *Panel {
	return &Panel{}
}

// OnUpdate registers a callback invoked whenever the panel changes.
func (p *Panel) OnUpdate(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = fn
}

// OpenPrompt shows a prompt and returns its ID. An open prompt is
// cancelled first.
func (p *Panel) OpenPrompt(label, initial string, handlers host.PromptHandlers) host.PromptID {
	p.mu.Lock()
	prev, wasOpen := p.handlers, p.id != ""
	p.id = ""
	p.handlers = host.PromptHandlers{}
	p.mu.Unlock()

	if wasOpen && prev.OnCancel != nil {
		prev.OnCancel()
	}

	id := host.PromptID(uuid.New().String())
	p.mu.Lock()
	p.id = id
	p.label = label
	p.text = initial
	p.handlers = handlers
	p.mu.Unlock()

	p.notify()
	return id
}

// ClosePrompt hides the prompt with the given ID without running any
// handler. Unknown or stale IDs are ignored.
func (p *Panel) ClosePrompt(id host.PromptID) {
	p.mu.Lock()
	if id == "" || id != p.id {
		p.mu.Unlock()
		return
	}
	p.closeLocked()
	p.mu.Unlock()

	p.notify()
}

func (p *Panel) closeLocked() {
	p.id = ""
	p.label = ""
	p.text = ""
	p.handlers = host.PromptHandlers{}
}

// Active reports whether a prompt is open.
func (p *Panel) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id != ""
}

// ID returns the ID of the open prompt, or "".
func (p *Panel) ID() host.PromptID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Label returns the label of the open prompt.
func (p *Panel) Label() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.label
}

// Text returns the current input.
func (p *Panel) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// SetText replaces the input and fires the change handler.
func (p *Panel) SetText(text string) {
	p.edit(func(string) string { return text })
}

// TypeRune appends r to the input and fires the change handler.
func (p *Panel) TypeRune(r rune) {
	p.edit(func(s string) string { return s + string(r) })
}

// Backspace removes the last rune of the input.
func (p *Panel) Backspace() {
	p.edit(func(s string) string {
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size]
	})
}

func (p *Panel) edit(fn func(string) string) {
	p.mu.Lock()
	if p.id == "" {
		p.mu.Unlock()
		return
	}
	before := p.text
	p.text = fn(before)
	text, onChange := p.text, p.handlers.OnChange
	p.mu.Unlock()

	p.notify()
	if text != before && onChange != nil {
		onChange(text)
	}
}

// Confirm closes the prompt and passes its input to the confirm handler.
func (p *Panel) Confirm() {
	p.mu.Lock()
	if p.id == "" {
		p.mu.Unlock()
		return
	}
	text, onConfirm := p.text, p.handlers.OnConfirm
	p.closeLocked()
	p.mu.Unlock()

	p.notify()
	if onConfirm != nil {
		onConfirm(text)
	}
}

// Cancel closes the prompt and runs the cancel handler.
func (p *Panel) Cancel() {
	p.mu.Lock()
	if p.id == "" {
		p.mu.Unlock()
		return
	}
	onCancel := p.handlers.OnCancel
	p.closeLocked()
	p.mu.Unlock()

	p.notify()
	if onCancel != nil {
		onCancel()
	}
}

func (p *Panel) notify() {
	p.mu.Lock()
	fn := p.onUpdate
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}
