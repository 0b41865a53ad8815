package rectangle

import "github.com/dshills/sbp/internal/host"

// DefaultContentLabel is the label of the replacement-content prompt.
const DefaultContentLabel = "Content:"

// Editor applies rectangle operations to the primary selection of a surface.
type Editor struct {
	surface  host.Surface
	prompter host.Prompter
	logger   host.Logger

	contentLabel string
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l host.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithContentLabel sets the label of the replacement-content prompt.
func WithContentLabel(label string) Option {
	return func(e *Editor) {
		if label != "" {
			e.contentLabel = label
		}
	}
}

// NewEditor creates an editor for surface. prompter may be nil when only
// Delete, Insert and Extract are used.
func NewEditor(surface host.Surface, prompter host.Prompter, opts ...Option) *Editor {
	e := &Editor{
		surface:      surface,
		prompter:     prompter,
		logger:       host.NopLogger{},
		contentLabel: DefaultContentLabel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetContentLabel changes the content prompt label.
func (e *Editor) SetContentLabel(label string) {
	if label != "" {
		e.contentLabel = label
	}
}

// Bounds returns the rectangle of the primary selection. Additional
// selections are ignored.
func (e *Editor) Bounds() (Rect, bool) {
	sels := e.surface.Selections()
	if len(sels) == 0 {
		return Rect{}, false
	}
	return FromRegion(e.surface, sels[0]), true
}

// Delete erases the rectangle of the primary selection from every row it
// spans and cancels the mark. It reports whether a rectangle was found.
func (e *Editor) Delete() bool {
	rect, ok := e.Bounds()
	if !ok {
		e.logger.Debug("rectangle delete: no selection")
		return false
	}

	e.surface.Edit("rectangle delete", func() {
		for row := rect.Bottom; row >= rect.Top; row-- {
			if span := rect.Span(e.surface, row); !span.Empty() {
				e.surface.Erase(span)
			}
		}
	})
	e.surface.CancelMark()

	e.logger.Debug("rectangle delete: %s", rect)
	return true
}

// BeginInsert prompts for replacement content and, on confirmation,
// replaces the rectangle of the primary selection with it.
func (e *Editor) BeginInsert() host.PromptID {
	if e.prompter == nil {
		e.logger.Warn("rectangle insert: no prompter available")
		return ""
	}
	var id host.PromptID
	id = e.prompter.OpenPrompt(e.contentLabel, "", host.PromptHandlers{
		OnConfirm: func(content string) {
			e.prompter.ClosePrompt(id)
			e.Insert(content)
		},
	})
	return id
}

// Insert replaces the rectangle's span on every row with content. Rows
// whose span is empty still receive content at the clipped left column.
// The mark is cancelled afterwards. It reports whether a rectangle was
// found.
func (e *Editor) Insert(content string) bool {
	rect, ok := e.Bounds()
	if !ok {
		e.logger.Debug("rectangle insert: no selection")
		return false
	}

	// Bottom-up so content containing newlines cannot shift pending rows.
	e.surface.Edit("rectangle insert", func() {
		for row := rect.Bottom; row >= rect.Top; row-- {
			if span := rect.Span(e.surface, row); !span.Empty() {
				e.surface.Erase(span)
			}
			e.surface.Insert(e.surface.TextPoint(row, rect.Left), content)
		}
	})
	e.surface.CancelMark()

	e.logger.Debug("rectangle insert: %s content=%q", rect, content)
	return true
}

// Extract returns the text of the primary selection's rectangle, one entry
// per row.
func (e *Editor) Extract() []string {
	rect, ok := e.Bounds()
	if !ok {
		return nil
	}
	return ExtractRect(e.surface, rect)
}

// ExtractRect returns the clipped span text of every row of rect.
func ExtractRect(s host.Surface, rect Rect) []string {
	rows := make([]string, 0, rect.Rows())
	for row := rect.Top; row <= rect.Bottom; row++ {
		rows = append(rows, s.Substr(rect.Span(s, row)))
	}
	return rows
}
